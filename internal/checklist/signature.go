package checklist

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
)

// ErrSignatureUndecodable marks a signature payload that could not be turned
// into an image. Callers store a null signature and surface a warning instead
// of failing the request.
var ErrSignatureUndecodable = errors.New("signature payload is not a decodable image")

// DecodeSignature turns a data-URL (or bare base64) PNG payload into raw
// image bytes. Browser canvases routinely strip base64 padding, so missing
// trailing '=' characters are repaired before decoding.
func DecodeSignature(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrSignatureUndecodable
	}

	// data:image/png;base64,<encoded> -> keep only the encoded part
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}

	if rem := len(payload) % 4; rem != 0 {
		payload += strings.Repeat("=", 4-rem)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignatureUndecodable, err)
	}

	if _, _, err := image.Decode(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignatureUndecodable, err)
	}

	return raw, nil
}

// FlattenSignature composites a signature image onto a white background and
// re-encodes it as PNG. Canvas exports carry an alpha channel that renders as
// black boxes in PDF output, so the alpha is dropped here.
func FlattenSignature(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode signature image: %w", err)
	}

	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, flat); err != nil {
		return nil, fmt.Errorf("encode flattened signature: %w", err)
	}
	return buf.Bytes(), nil
}
