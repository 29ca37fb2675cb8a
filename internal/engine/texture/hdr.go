// Package texture provides image decoding and texture processing utilities.
package texture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// HDR is a decoded high dynamic range image with linear float RGB pixels,
// stored top row first.
type HDR struct {
	Width  int
	Height int
	Pix    []float32 // 3 floats per pixel
}

// At returns the linear RGB value at (x, y).
func (h *HDR) At(x, y int) [3]float32 {
	i := (y*h.Width + x) * 3
	return [3]float32{h.Pix[i], h.Pix[i+1], h.Pix[i+2]}
}

// Average returns the mean color of the image, a cheap stand-in for
// ambient irradiance.
func (h *HDR) Average() [3]float32 {
	var sum [3]float64
	n := h.Width * h.Height
	if n == 0 {
		return [3]float32{}
	}
	for i := 0; i < n; i++ {
		sum[0] += float64(h.Pix[i*3])
		sum[1] += float64(h.Pix[i*3+1])
		sum[2] += float64(h.Pix[i*3+2])
	}
	return [3]float32{float32(sum[0] / float64(n)), float32(sum[1] / float64(n)), float32(sum[2] / float64(n))}
}

// ErrNotHDR is returned when the data lacks a Radiance signature.
var ErrNotHDR = errors.New("not a Radiance HDR file")

// Decoded size limits. An 8K equirectangular map is 8192x4096.
const (
	MaxHDRSide   = 32768
	MaxHDRPixels = 1 << 25
)

// DecodeHDR decodes a Radiance RGBE (.hdr) image. Supports flat scanlines
// and new-style run-length encoded scanlines in the standard -Y H +X W
// orientation, which is what HDRI sites publish.
func DecodeHDR(data []byte) (*HDR, error) {
	r := bufio.NewReader(bytes.NewReader(data))

	magic, err := readLine(r)
	if err != nil {
		return nil, fmt.Errorf("reading signature: %w", err)
	}
	if !strings.HasPrefix(magic, "#?") {
		return nil, ErrNotHDR
	}

	// Header lines end with an empty line
	for {
		line, err := readLine(r)
		if err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		if line == "" {
			break
		}
		if format, ok := strings.CutPrefix(line, "FORMAT="); ok && format != "32-bit_rle_rgbe" {
			return nil, fmt.Errorf("unsupported HDR format %q", format)
		}
	}

	resolution, err := readLine(r)
	if err != nil {
		return nil, fmt.Errorf("reading resolution: %w", err)
	}
	width, height, err := parseResolution(resolution)
	if err != nil {
		return nil, err
	}

	img := &HDR{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*3),
	}

	scanline := make([]byte, width*4)
	for y := 0; y < height; y++ {
		if err := readScanline(r, scanline, width); err != nil {
			return nil, fmt.Errorf("scanline %d: %w", y, err)
		}
		row := img.Pix[y*width*3:]
		for x := 0; x < width; x++ {
			rgbe := scanline[x*4 : x*4+4]
			row[x*3], row[x*3+1], row[x*3+2] = rgbeToFloat(rgbe[0], rgbe[1], rgbe[2], rgbe[3])
		}
	}

	return img, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseResolution parses "-Y <height> +X <width>".
func parseResolution(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "-Y" || fields[2] != "+X" {
		return 0, 0, fmt.Errorf("unsupported HDR orientation %q", line)
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("invalid HDR height %q", fields[1])
	}
	width, err := strconv.Atoi(fields[3])
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("invalid HDR width %q", fields[3])
	}
	// Both sides are bounded first so the product cannot overflow
	if width > MaxHDRSide || height > MaxHDRSide || width*height > MaxHDRPixels {
		return 0, 0, fmt.Errorf("invalid HDR size %dx%d", width, height)
	}
	return width, height, nil
}

// readScanline reads one scanline of width RGBE pixels into dst as
// interleaved RGBE bytes.
func readScanline(r *bufio.Reader, dst []byte, width int) error {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return err
	}

	// New-style RLE: 2, 2, width high byte, width low byte
	if width < 8 || width > 0x7fff || head[0] != 2 || head[1] != 2 || head[2]&0x80 != 0 {
		copy(dst, head[:])
		_, err := io.ReadFull(r, dst[4:])
		return err
	}
	if int(head[2])<<8|int(head[3]) != width {
		return fmt.Errorf("RLE scanline width %d, want %d", int(head[2])<<8|int(head[3]), width)
	}

	// Each of the four channels is stored separately
	for ch := 0; ch < 4; ch++ {
		for x := 0; x < width; {
			count, err := r.ReadByte()
			if err != nil {
				return err
			}
			if count > 128 {
				// Run of a single value
				n := int(count) - 128
				if x+n > width {
					return errors.New("RLE run overflows scanline")
				}
				value, err := r.ReadByte()
				if err != nil {
					return err
				}
				for i := 0; i < n; i++ {
					dst[(x+i)*4+ch] = value
				}
				x += n
			} else {
				// Literal values
				n := int(count)
				if n == 0 || x+n > width {
					return errors.New("bad RLE literal length")
				}
				for i := 0; i < n; i++ {
					value, err := r.ReadByte()
					if err != nil {
						return err
					}
					dst[(x+i)*4+ch] = value
				}
				x += n
			}
		}
	}
	return nil
}

// rgbeToFloat converts a shared-exponent pixel to linear RGB.
func rgbeToFloat(r, g, b, e byte) (float32, float32, float32) {
	if e == 0 {
		return 0, 0, 0
	}
	f := float32(math.Ldexp(1, int(e)-(128+8)))
	return float32(r) * f, float32(g) * f, float32(b) * f
}
