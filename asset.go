package fingerprint

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gogpu/fingerprint/internal/image"
)

//go:embed assets/fingerprint.png
var referencePNG []byte

// Asset is a source of reference image bytes.
type Asset interface {
	// Name identifies the asset in logs and notices.
	Name() string

	// Open returns the encoded image. The caller closes it.
	Open() (io.ReadCloser, error)
}

// DefaultAsset returns the bundled reference image. Results are only
// comparable between hosts that render the same asset bytes.
func DefaultAsset() Asset {
	return BytesAsset("fingerprint.png", referencePNG)
}

type bytesAsset struct {
	name string
	data []byte
}

// BytesAsset serves an in-memory encoded image.
func BytesAsset(name string, data []byte) Asset {
	return bytesAsset{name: name, data: data}
}

func (a bytesAsset) Name() string { return a.name }

func (a bytesAsset) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(a.data)), nil
}

type fileAsset string

// FileAsset reads an encoded image from the filesystem on every pass.
func FileAsset(path string) Asset {
	return fileAsset(filepath.Clean(path))
}

func (a fileAsset) Name() string { return string(a) }

func (a fileAsset) Open() (io.ReadCloser, error) {
	return os.Open(string(a))
}

type fsAsset struct {
	fsys fs.FS
	name string
}

// FSAsset reads an encoded image from fsys.
func FSAsset(fsys fs.FS, name string) Asset {
	return fsAsset{fsys: fsys, name: name}
}

func (a fsAsset) Name() string { return a.name }

func (a fsAsset) Open() (io.ReadCloser, error) {
	return a.fsys.Open(a.name)
}

// ImageFuture is a single-shot asynchronous image load. It resolves exactly
// once, with either a decoded image or an error.
type ImageFuture struct {
	done chan struct{}
	img  Image
	err  error
}

// LoadImage starts reading and decoding a in a new goroutine.
func LoadImage(a Asset) *ImageFuture {
	f := &ImageFuture{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.img, f.err = decodeAsset(a)
	}()
	return f
}

// Done is closed when the future has resolved.
func (f *ImageFuture) Done() <-chan struct{} { return f.done }

// Await blocks until the image is decoded or ctx ends. A context that ends
// first yields an error wrapping both ErrAssetStalled and ctx.Err(); the
// load keeps running in the background and its result is discarded.
func (f *ImageFuture) Await(ctx context.Context) (Image, error) {
	select {
	case <-f.done:
		return f.img, f.err
	case <-ctx.Done():
		return Image{}, fmt.Errorf("%w: %w", ErrAssetStalled, ctx.Err())
	}
}

func decodeAsset(a Asset) (Image, error) {
	if a == nil {
		return Image{}, fmt.Errorf("%w: no asset", ErrAssetDecode)
	}
	rc, err := a.Open()
	if err != nil {
		return Image{}, fmt.Errorf("%w: open %s: %w", ErrAssetDecode, a.Name(), err)
	}
	defer func() { _ = rc.Close() }()

	buf, err := image.Decode(rc)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %s: %w", ErrAssetDecode, a.Name(), err)
	}
	if buf.Width() == 0 || buf.Height() == 0 {
		return Image{}, fmt.Errorf("%w: %s: empty image", ErrAssetDecode, a.Name())
	}
	return Image{Width: buf.Width(), Height: buf.Height(), Pix: buf.Data()}, nil
}
