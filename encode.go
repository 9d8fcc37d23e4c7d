package glassfx

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// dataURIPrefix prefixes base64 PNG data URIs.
const dataURIPrefix = "data:image/png;base64,"

// EncodePNG writes the map as a PNG image.
func (m *DisplacementMap) EncodePNG(w io.Writer) error {
	return png.Encode(w, m.view())
}

// SavePNG saves the map to a PNG file.
func (m *DisplacementMap) SavePNG(path string) error {
	return savePNG(path, m.view())
}

// SavePNG writes img to a PNG file at path.
func SavePNG(path string, img image.Image) error {
	return savePNG(path, img)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("glassfx: create file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("glassfx: encode PNG: %w", err)
	}

	return f.Close()
}

// pngEncoder turns composed maps into data URIs.
type pngEncoder struct {
	enc png.Encoder
}

// DataURI encodes img as a base64 PNG data URI.
func (e *pngEncoder) DataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := e.enc.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("glassfx: encode PNG: %w", err)
	}

	out := make([]byte, len(dataURIPrefix)+base64.StdEncoding.EncodedLen(buf.Len()))
	copy(out, dataURIPrefix)
	base64.StdEncoding.Encode(out[len(dataURIPrefix):], buf.Bytes())
	return string(out), nil
}

// DataURI encodes img as a base64 PNG data URI with default compression.
func DataURI(img image.Image) (string, error) {
	var e pngEncoder
	return e.DataURI(img)
}
