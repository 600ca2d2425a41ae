package raster

import "math"

// subpixelBits is the fixed-point precision vertices are snapped to.
const subpixelBits = 8

const (
	subpixelOne  = 1 << subpixelBits
	subpixelHalf = subpixelOne / 2
)

// maxWindowCoord bounds snapped vertex coordinates so that edge function
// products stay within int64.
const maxWindowCoord = 1 << 20

// Vertex is a clip-space position with one texture coordinate.
type Vertex struct {
	X, Y float64
	U, V float64
}

// Topology describes how a vertex stream is assembled into triangles.
type Topology uint8

const (
	// TriangleList uses every three vertices as an independent triangle.
	TriangleList Topology = iota

	// TriangleStrip forms a triangle from every vertex after the second,
	// alternating winding so that all triangles keep the orientation of
	// the first.
	TriangleStrip
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case TriangleList:
		return "TriangleList"
	case TriangleStrip:
		return "TriangleStrip"
	default:
		return "Unknown"
	}
}

// Assemble groups vertices into triangles according to the topology.
// Incomplete trailing primitives are dropped.
func Assemble(t Topology, verts []Vertex) [][3]Vertex {
	var tris [][3]Vertex
	switch t {
	case TriangleList:
		for i := 0; i+2 < len(verts); i += 3 {
			tris = append(tris, [3]Vertex{verts[i], verts[i+1], verts[i+2]})
		}
	case TriangleStrip:
		for i := 0; i+2 < len(verts); i++ {
			if i%2 == 0 {
				tris = append(tris, [3]Vertex{verts[i], verts[i+1], verts[i+2]})
			} else {
				tris = append(tris, [3]Vertex{verts[i+1], verts[i], verts[i+2]})
			}
		}
	}
	return tris
}

// Fragment is one covered pixel with its interpolated texture coordinate
// and the screen-space derivatives of that coordinate.
type Fragment struct {
	X, Y       int
	U, V       float64
	DUDX, DUDY float64
	DVDX, DVDY float64
}

// FragmentFunc computes the color written for a fragment.
type FragmentFunc func(f Fragment) (r, g, b, a byte)

// Draw rasterizes the vertex stream into fb over a viewport covering the
// whole framebuffer. Fragments replace the destination; there is no
// blending, depth test or culling. Draw returns the number of fragments
// written.
func Draw(fb *Framebuffer, t Topology, verts []Vertex, shade FragmentFunc) int {
	return drawRows(fb, Assemble(t, verts), shade, 0, fb.height)
}

// Executor runs a batch of independent functions and waits for them.
type Executor interface {
	ExecuteAll(work []func())
}

// minBandRows is the smallest band DrawParallel hands to one worker.
const minBandRows = 32

// DrawParallel is Draw with the framebuffer split into horizontal bands
// rasterized concurrently on ex. Every pixel sees the triangles in stream
// order, so the result is identical to Draw. shade must be safe for
// concurrent use.
func DrawParallel(fb *Framebuffer, t Topology, verts []Vertex, shade FragmentFunc, ex Executor, bands int) int {
	bands = min(bands, fb.height/minBandRows)
	if ex == nil || bands < 2 {
		return Draw(fb, t, verts, shade)
	}

	tris := Assemble(t, verts)
	counts := make([]int, bands)
	work := make([]func(), bands)
	for i := range work {
		y0 := fb.height * i / bands
		y1 := fb.height * (i + 1) / bands
		work[i] = func() {
			counts[i] = drawRows(fb, tris, shade, y0, y1)
		}
	}
	ex.ExecuteAll(work)

	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}

// drawRows rasterizes tris into rows [y0, y1) of fb.
func drawRows(fb *Framebuffer, tris [][3]Vertex, shade FragmentFunc, y0, y1 int) int {
	n := 0
	for _, tri := range tris {
		n += drawTriangle(fb, tri, shade, y0, y1)
	}
	return n
}

// point is a vertex position in fixed-point window coordinates.
type point struct {
	x, y int64
}

// window maps clip-space coordinates through the viewport transform.
func window(v Vertex, w, h int) (float64, float64) {
	return (v.X + 1) * 0.5 * float64(w), (v.Y + 1) * 0.5 * float64(h)
}

func snap(v float64) (int64, bool) {
	if math.IsNaN(v) || math.Abs(v) > maxWindowCoord {
		return 0, false
	}
	return int64(math.Round(v * subpixelOne)), true
}

// edge is twice the signed area of (a, b, p); positive when p lies to the
// left of a→b with y pointing up.
func edge(a, b, p point) int64 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

// owns reports whether pixel centers exactly on a→b belong to the triangle.
// For counter-clockwise triangles this selects left edges and horizontal
// top edges, so an edge shared by two triangles is owned by exactly one.
func owns(a, b point) bool {
	dy := b.y - a.y
	return dy < 0 || (dy == 0 && b.x < a.x)
}

func covers(w int64, a, b point) bool {
	return w > 0 || (w == 0 && owns(a, b))
}

func drawTriangle(fb *Framebuffer, tri [3]Vertex, shade FragmentFunc, y0, y1 int) int {
	var (
		p  [3]point
		wx [3]float64
		wy [3]float64
	)
	for i, v := range tri {
		wx[i], wy[i] = window(v, fb.width, fb.height)
		x, okx := snap(wx[i])
		y, oky := snap(wy[i])
		if !okx || !oky {
			return 0
		}
		p[i] = point{x, y}
	}

	area := edge(p[0], p[1], p[2])
	if area == 0 {
		return 0
	}
	if area < 0 {
		p[1], p[2] = p[2], p[1]
		tri[1], tri[2] = tri[2], tri[1]
		wx[1], wx[2] = wx[2], wx[1]
		wy[1], wy[2] = wy[2], wy[1]
		area = -area
	}

	d := derivatives(tri, wx, wy)

	minX := max(floorDiv(min(p[0].x, p[1].x, p[2].x)), 0)
	maxX := min(floorDiv(max(p[0].x, p[1].x, p[2].x)), int64(fb.width-1))
	minY := max(floorDiv(min(p[0].y, p[1].y, p[2].y)), int64(y0))
	maxY := min(floorDiv(max(p[0].y, p[1].y, p[2].y)), int64(y1-1))

	inv := 1 / float64(area)
	n := 0
	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			c := point{px*subpixelOne + subpixelHalf, py*subpixelOne + subpixelHalf}
			w0 := edge(p[1], p[2], c)
			w1 := edge(p[2], p[0], c)
			w2 := edge(p[0], p[1], c)
			if !covers(w0, p[1], p[2]) || !covers(w1, p[2], p[0]) || !covers(w2, p[0], p[1]) {
				continue
			}

			l0 := float64(w0) * inv
			l1 := float64(w1) * inv
			l2 := float64(w2) * inv

			f := d
			f.X, f.Y = int(px), int(py)
			f.U = l0*tri[0].U + l1*tri[1].U + l2*tri[2].U
			f.V = l0*tri[0].V + l1*tri[1].V + l2*tri[2].V

			r, g, b, a := shade(f)
			fb.Set(f.X, f.Y, r, g, b, a)
			n++
		}
	}
	return n
}

// derivatives returns the constant screen-space gradients of U and V over
// the triangle.
func derivatives(tri [3]Vertex, wx, wy [3]float64) Fragment {
	x1, y1 := wx[1]-wx[0], wy[1]-wy[0]
	x2, y2 := wx[2]-wx[0], wy[2]-wy[0]
	det := x1*y2 - x2*y1
	if det == 0 {
		return Fragment{}
	}

	u1, u2 := tri[1].U-tri[0].U, tri[2].U-tri[0].U
	v1, v2 := tri[1].V-tri[0].V, tri[2].V-tri[0].V

	return Fragment{
		DUDX: (u1*y2 - u2*y1) / det,
		DUDY: (u2*x1 - u1*x2) / det,
		DVDX: (v1*y2 - v2*y1) / det,
		DVDY: (v2*x1 - v1*x2) / det,
	}
}

// floorDiv converts a fixed-point coordinate to the index of the pixel
// containing it.
func floorDiv(v int64) int64 {
	if v >= 0 {
		return v >> subpixelBits
	}
	return -((-v + subpixelOne - 1) >> subpixelBits)
}
