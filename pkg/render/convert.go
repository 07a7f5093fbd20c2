package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
)

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "--format=pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert. The scale factor
// multiplies the raster resolution; 2.0 suits high-DPI displays.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1.0
	}
	return rsvgConvert(svg, "--format=png", "--zoom="+strconv.FormatFloat(scale, 'f', -1, 64))
}

func rsvgConvert(svg []byte, args ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("rsvg-convert not found (install librsvg): %w", err)
	}

	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %w: %s", err, stderr.String())
	}
	return out.Bytes(), nil
}
