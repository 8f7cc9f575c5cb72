// Package vertexio reads and writes vertex lists as plain text.
//
// Input: one vertex per line as "x,y", "x y" or "x;y". Blank lines and lines
// starting with '#' are skipped, as are lines with fewer than two fields.
// Fields beyond the second are ignored.
//
// Output: a "# x,y" header followed by one "x,y" line per vertex.
package vertexio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/antroute/aco"
)

// Extension is appended by SaveFile when the path lacks it.
const Extension = ".csv"

const header = "# x,y"

var (
	// ErrEmpty is returned when input holds no vertex lines.
	ErrEmpty = errors.New("vertexio: no vertices")
	// ErrSyntax is returned for unparsable or non-finite coordinates.
	ErrSyntax = errors.New("vertexio: invalid coordinate")
)

// Read parses vertices from r.
//
// Errors: ErrSyntax (with the 1-based line number), ErrEmpty, read errors.
func Read(r io.Reader) ([]aco.Vertex, error) {
	var (
		out  []aco.Vertex
		sc   = bufio.NewScanner(r)
		line int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, isSeparator)
		if len(fields) < 2 {
			continue
		}
		x, err := parseCoord(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: x %q: %w", line, fields[0], err)
		}
		y, err := parseCoord(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: y %q: %w", line, fields[1], err)
		}
		out = append(out, aco.Vertex{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read vertices: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}

	return out, nil
}

func isSeparator(r rune) bool {
	return r == ',' || r == ';' || r == ' ' || r == '\t'
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrSyntax
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrSyntax
	}

	return v, nil
}

// Write emits the header and one "x,y" line per vertex.
func Write(w io.Writer, vs []aco.Vertex) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}
	for _, v := range vs {
		if _, err := fmt.Fprintf(bw, "%s,%s\n", formatCoord(v.X), formatCoord(v.Y)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Within keeps vertices inside [0,width]×[0,height] and reports how many
// were dropped.
func Within(vs []aco.Vertex, width, height float64) ([]aco.Vertex, int) {
	kept := make([]aco.Vertex, 0, len(vs))
	for _, v := range vs {
		if v.X >= 0 && v.X <= width && v.Y >= 0 && v.Y <= height {
			kept = append(kept, v)
		}
	}

	return kept, len(vs) - len(kept)
}

// LoadFile reads vertices from path.
func LoadFile(path string) ([]aco.Vertex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vertices: %w", err)
	}
	defer f.Close()

	vs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return vs, nil
}

// SaveFile writes vertices to path, appending Extension when missing and
// creating parent directories. It returns the path actually written.
func SaveFile(path string, vs []aco.Vertex) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		path += Extension
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return path, fmt.Errorf("create dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("create vertices file: %w", err)
	}
	if err = Write(f, vs); err != nil {
		f.Close()
		return path, fmt.Errorf("write vertices: %w", err)
	}

	return path, f.Close()
}
