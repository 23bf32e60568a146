// Package export writes particle frames as POV-Ray scene files.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pthm-cable/sphfluid/sph"
)

const scenePreamble = `#include "colors.inc"
camera { location <10, 30, -40.0> look_at <10, 10, 0.0> }
light_source { <0, 30, -30> color White }
`

// FrameName returns the file name for frame i, e.g. result007.pov.
func FrameName(i int) string {
	return fmt.Sprintf("result%03d.pov", i)
}

// WriteScene writes the scene preamble and one sphere per particle.
func WriteScene(w io.Writer, ps []sph.Particle) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(scenePreamble); err != nil {
		return err
	}

	var buf []byte
	for i := range ps {
		pos := ps[i].Position
		buf = append(buf[:0], "sphere {\n  <"...)
		buf = strconv.AppendFloat(buf, pos.X, 'f', -1, 64)
		buf = append(buf, ", "...)
		buf = strconv.AppendFloat(buf, pos.Y, 'f', -1, 64)
		buf = append(buf, ", 0>, 0.5\n  texture { pigment { color Gray30 } }\n}\n"...)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// POVExporter writes one scene file per frame into a directory.
type POVExporter struct {
	dir string
}

// NewPOVExporter creates the output directory if needed.
func NewPOVExporter(dir string) (*POVExporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	return &POVExporter{dir: dir}, nil
}

// Dir returns the output directory.
func (e *POVExporter) Dir() string {
	return e.dir
}

// Export writes frame i and returns its path. Frames form an ordered
// sequence, so callers should stop the run on error rather than skip a frame.
func (e *POVExporter) Export(i int, ps []sph.Particle) (string, error) {
	path := filepath.Join(e.dir, FrameName(i))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteScene(f, ps); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
