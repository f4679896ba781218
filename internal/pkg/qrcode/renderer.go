package qrcode

import (
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// Renderer turns a string into a scannable PNG image.
type Renderer interface {
	PNG(content string) ([]byte, error)
}

type pngRenderer struct {
	size int
}

func NewRenderer(size int) Renderer {
	if size <= 0 {
		size = DefaultSize
	}
	return &pngRenderer{size: size}
}

func (r *pngRenderer) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qrcode: empty content")
	}
	png, err := goqrcode.Encode(content, goqrcode.Medium, r.size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encode: %w", err)
	}
	return png, nil
}
