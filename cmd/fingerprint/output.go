package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/fingerprint"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

// writeResult renders r to w in the given format.
func writeResult(w io.Writer, format string, r fingerprint.Result) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatYAML:
		return writeYAML(w, r)
	default:
		return writeResultText(w, r)
	}
}

func writeResultText(w io.Writer, r fingerprint.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"GPU", r.GPUID},
		{"Render", r.RenderID},
		{"Screen", r.ScreenID},
		{"Platform", r.PlatformID},
		{"Timezone", r.TimezoneID},
		{"Unique", r.UniqueID},
	}
	if r.IsDegraded() {
		kinds := make([]string, len(r.Degraded))
		for i, k := range r.Degraded {
			kinds[i] = k.String()
		}
		rows = append(rows, [2]string{"Degraded", strings.Join(kinds, ", ")})
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// writeEnvironment renders e to w in the given format.
func writeEnvironment(w io.Writer, format string, e fingerprint.Environment) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	case formatYAML:
		return writeYAML(w, e)
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Screen:\t%s\n", e.ScreenID)
		fmt.Fprintf(tw, "Platform:\t%s\n", e.PlatformID)
		fmt.Fprintf(tw, "Timezone:\t%s\n", e.TimezoneID)
		return tw.Flush()
	}
}
