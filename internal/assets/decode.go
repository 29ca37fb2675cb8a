package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/Faultbox/orbits/internal/engine/texture"
)

// IsHDR reports whether ref names a Radiance HDR image.
func IsHDR(ref string) bool {
	if i := strings.IndexAny(ref, "?#"); i >= 0 && IsRemote(ref) {
		ref = ref[:i]
	}
	return strings.EqualFold(path.Ext(ref), ".hdr")
}

// DecodeImage decodes an 8-bit image and converts it to RGBA.
func DecodeImage(data []byte) (*image.RGBA, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}
	return texture.ToRGBA(img), format, nil
}

// DecodeHDR decodes a Radiance HDR image.
func DecodeHDR(data []byte) (*texture.HDR, error) {
	img, err := texture.DecodeHDR(data)
	if err != nil {
		return nil, fmt.Errorf("decoding hdr: %w", err)
	}
	return img, nil
}
