package qr

import (
	"fmt"
	"os"

	"github.com/skip2/go-qrcode"
)

const defaultPNGSize = 256

// Renderer draws QR payloads for the teacher's screen
type Renderer struct {
	level qrcode.RecoveryLevel
	size  int
}

// NewRenderer creates a renderer with medium error correction
func NewRenderer() *Renderer {
	return &Renderer{level: qrcode.Medium, size: defaultPNGSize}
}

// Terminal renders text as a QR code made of half-block characters
func (r *Renderer) Terminal(text string) (string, error) {
	code, err := qrcode.New(text, r.level)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr: %w", err)
	}
	return code.ToSmallString(false), nil
}

// PNG renders text as a PNG image
func (r *Renderer) PNG(text string) ([]byte, error) {
	png, err := qrcode.Encode(text, r.level, r.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr: %w", err)
	}
	return png, nil
}

// WriteFile renders text as a PNG image at path
func (r *Renderer) WriteFile(text, path string) error {
	png, err := r.PNG(text)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("failed to write qr image: %w", err)
	}
	return nil
}
