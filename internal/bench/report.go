package bench

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/vmihailenco/msgpack/v5"
)

const reportSchemaVersion uint16 = 1

// ErrVerify marks a case whose resolved output differs from its input.
var ErrVerify = errors.New("round-trip verification failed")

// Result is the measurement of one case.
type Result struct {
	Case     string  `json:"case" msgpack:"case"`
	Strategy string  `json:"strategy" msgpack:"strategy"`
	Op       string  `json:"op" msgpack:"op"`
	Length   int     `json:"length" msgpack:"length"`
	Width    int     `json:"width" msgpack:"width"`
	Values   int     `json:"values" msgpack:"values"`
	Bytes    int64   `json:"bytes" msgpack:"bytes"`
	NsTotal  int64   `json:"ns_total" msgpack:"ns_total"`
	NsPerOp  float64 `json:"ns_per_op" msgpack:"ns_per_op"`
	MBPerSec float64 `json:"mb_per_sec" msgpack:"mb_per_sec"`
	Entries  int     `json:"entries" msgpack:"entries"`
	Inline   int     `json:"inline,omitempty" msgpack:"inline,omitempty"`
	Checksum uint64  `json:"checksum" msgpack:"checksum"`
	Failed   int     `json:"failed,omitempty" msgpack:"failed,omitempty"`
	Err      string  `json:"error,omitempty" msgpack:"error,omitempty"`
}

func (r *Result) setTiming(n int, d time.Duration) {
	r.NsTotal = d.Nanoseconds()
	if n > 0 {
		r.NsPerOp = float64(r.NsTotal) / float64(n)
	}
	if secs := d.Seconds(); secs > 0 {
		r.MBPerSec = float64(r.Bytes) / (1 << 20) / secs
	}
}

// Report is the full outcome of a Run.
type Report struct {
	Schema  uint16    `json:"schema" msgpack:"schema"`
	Width   int       `json:"width" msgpack:"width"`
	Count   int       `json:"count" msgpack:"count"`
	Seed    uint64    `json:"seed" msgpack:"seed"`
	Created time.Time `json:"created" msgpack:"created"`
	Results []Result  `json:"results" msgpack:"results"`
}

// Failed reports whether any case recorded an error.
func (r *Report) Failed() bool {
	for i := range r.Results {
		if r.Results[i].Err != "" {
			return true
		}
	}
	return false
}

// Format selects the report encoding.
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatPretty:
		return FormatPretty, nil
	case FormatJSON, FormatMsgpack:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected: pretty|json|msgpack)", s)
	}
}

// Write encodes r to w. useColor only affects the pretty format.
func (r *Report) Write(w io.Writer, format Format, useColor bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.UseCompactInts(true)
		return enc.Encode(r)
	case FormatPretty, "":
		return r.writePretty(w, useColor)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func (r *Report) writePretty(w io.Writer, useColor bool) error {
	head := color.New(color.Bold)
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)
	for _, c := range []*color.Color{head, ok, bad, dim} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if _, err := head.Fprintf(w, "%-28s %10s %10s %8s %8s\n", "case", "ns/op", "MB/s", "entries", "inline"); err != nil {
		return err
	}
	for i := range r.Results {
		res := &r.Results[i]
		if res.Err != "" {
			if _, err := bad.Fprintf(w, "%-28s %s\n", res.Case, res.Err); err != nil {
				return err
			}
			continue
		}
		inline := "-"
		if res.Strategy == string(StrategyShort) {
			inline = fmt.Sprintf("%d", res.Inline)
		}
		if _, err := ok.Fprintf(w, "%-28s %10.2f %10.2f %8d %8s\n",
			res.Case, res.NsPerOp, res.MBPerSec, res.Entries, inline); err != nil {
			return err
		}
	}
	_, err := dim.Fprintf(w, "width=%d count=%d seed=%d\n", r.Width, r.Count, r.Seed)
	return err
}

// ReadMsgpack decodes a report written with FormatMsgpack.
func ReadMsgpack(rd io.Reader) (*Report, error) {
	var r Report
	if err := msgpack.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if r.Schema != reportSchemaVersion {
		return nil, fmt.Errorf("report schema %d not supported (want %d)", r.Schema, reportSchemaVersion)
	}
	return &r, nil
}
