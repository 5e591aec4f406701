// Package surface implements the pixel storage backing every fill, stroke,
// and composite operation: a byte-addressable or bit-packed buffer that
// either owns its memory or borrows an externally supplied one.
//
// RGB, RGBA, and Alpha8 are byte-addressable: one row occupies a
// byte-aligned run of s.stride bytes, padding included. Alpha4, Alpha2,
// and Alpha1 are bit-packed: pixels are addressed by a single flat index
// (y*width+x) into one contiguous bitstream with no per-row padding, and
// pixel index 0 occupies the low bits of byte 0. This matters: a 3x3
// Alpha4 surface with nonzero pixels only at (0,0), (1,1), and (2,2)
// packs into exactly 5 bytes (9 pixels * 4 bits = 36 bits = 4.5 bytes,
// rounded up), not 6 (which per-row byte alignment would produce).
package surface

import (
	"errors"

	"github.com/inkraster/raster2d/pixfmt"
)

// Sentinel errors for surface construction and compositing.
var (
	// ErrInvalidWidth is returned when width is non-positive.
	ErrInvalidWidth = errors.New("surface: invalid width")
	// ErrInvalidHeight is returned when height is non-positive.
	ErrInvalidHeight = errors.New("surface: invalid height")
	// ErrBufferTooSmall is returned when a caller-supplied buffer is
	// smaller than the format and dimensions require.
	ErrBufferTooSmall = errors.New("surface: buffer too small")
	// ErrBufferNotOwned is returned by operations that would need to
	// resize a surface backed by an externally owned buffer.
	ErrBufferNotOwned = errors.New("surface: buffer is externally owned")
	// ErrFormatMismatch is returned when compositing two surfaces of
	// different pixel formats.
	ErrFormatMismatch = errors.New("surface: format mismatch")
)

// downsampleScale is the supersample factor consumed by Downsample.
const downsampleScale = 4

// Surface is a 2D buffer of pixels in a single pixfmt.Format.
type Surface struct {
	format pixfmt.Format
	width  int
	height int
	stride int // byte-addressable formats only; unused (0) for packed formats
	data   []byte
	owned  bool
}

// byteStride returns the per-row byte count for byte-addressable formats.
func byteStride(f pixfmt.Format, width int) int {
	switch f {
	case pixfmt.RGB:
		return width * 3
	case pixfmt.RGBA:
		return width * 4
	default: // Alpha8
		return width
	}
}

// bufferSize returns the total number of bytes format f needs to store a
// width x height surface: row-padded for byte-addressable formats, a flat
// unpadded bitstream for packed formats.
func bufferSize(f pixfmt.Format, width, height int) int {
	if f.IsPacked() {
		bits := f.Bits()
		return (width*height*bits + 7) / 8
	}
	return byteStride(f, width) * height
}

// New allocates a fresh, owned surface of the given format and dimensions,
// cleared to transparent black (or opaque black for RGB).
func New(format pixfmt.Format, width, height int) (*Surface, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	if height <= 0 {
		return nil, ErrInvalidHeight
	}
	stride := 0
	if !format.IsPacked() {
		stride = byteStride(format, width)
	}
	return &Surface{
		format: format,
		width:  width,
		height: height,
		stride: stride,
		data:   make([]byte, bufferSize(format, width, height)),
		owned:  true,
	}, nil
}

// NewFilled allocates an owned surface and preloads every pixel with px.
func NewFilled(format pixfmt.Format, px pixfmt.Pixel, width, height int) (*Surface, error) {
	s, err := New(format, width, height)
	if err != nil {
		return nil, err
	}
	s.PaintPixel(px)
	return s, nil
}

// FromBuffer wraps an externally owned buffer as a surface. The caller
// retains ownership of buf and must keep it valid and unaliased for the
// surface's lifetime. Because the buffer is borrowed, operations that
// would need to resize it (Downsample) fail with ErrBufferNotOwned.
func FromBuffer(format pixfmt.Format, buf []byte, width, height int) (*Surface, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	if height <= 0 {
		return nil, ErrInvalidHeight
	}
	need := bufferSize(format, width, height)
	if len(buf) < need {
		return nil, ErrBufferTooSmall
	}
	stride := 0
	if !format.IsPacked() {
		stride = byteStride(format, width)
	}
	return &Surface{
		format: format,
		width:  width,
		height: height,
		stride: stride,
		data:   buf[:need],
		owned:  false,
	}, nil
}

// Clone returns a deep, owned copy of s.
func (s *Surface) Clone() *Surface {
	data := make([]byte, len(s.data))
	copy(data, s.data)
	return &Surface{format: s.format, width: s.width, height: s.height, stride: s.stride, data: data, owned: true}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Format returns the surface's pixel format.
func (s *Surface) Format() pixfmt.Format { return s.format }

// RowStride returns the number of bytes per row for byte-addressable
// formats (RGB, RGBA, Alpha8). For packed formats rows are not
// byte-aligned and this returns 0; use Data() directly.
func (s *Surface) RowStride() int { return s.stride }

// Data returns the raw backing bytes. Callers that mutate this slice
// directly must respect the format's packing convention.
func (s *Surface) Data() []byte { return s.data }

func (s *Surface) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// GetPixel reads the pixel at (x, y). Out-of-range coordinates return the
// zero Pixel and false rather than failing.
func (s *Surface) GetPixel(x, y int) (pixfmt.Pixel, bool) {
	if !s.inBounds(x, y) {
		return pixfmt.Pixel{}, false
	}
	switch s.format {
	case pixfmt.RGB:
		off := y*s.stride + x*3
		return pixfmt.Pixel{Format: pixfmt.RGB, R: s.data[off], G: s.data[off+1], B: s.data[off+2]}, true
	case pixfmt.RGBA:
		off := y*s.stride + x*4
		return pixfmt.Pixel{Format: pixfmt.RGBA, R: s.data[off], G: s.data[off+1], B: s.data[off+2], A: s.data[off+3]}, true
	case pixfmt.Alpha8:
		return pixfmt.Pixel{Format: pixfmt.Alpha8, A: s.data[y*s.stride+x]}, true
	default:
		bits := s.format.Bits()
		perByte := 8 / bits
		idx := y*s.width + x
		byteIdx := idx / perByte
		shift := uint(idx%perByte) * uint(bits)
		mask := byte(s.format.Max())
		v := (s.data[byteIdx] >> shift) & mask
		return pixfmt.Pixel{Format: s.format, A: v}, true
	}
}

// PutPixel writes px (converted to s's format via CopySrc) at (x, y).
// Out-of-range coordinates are silently ignored.
func (s *Surface) PutPixel(x, y int, px pixfmt.Pixel) {
	if !s.inBounds(x, y) {
		return
	}
	px = px.CopySrc(s.format)
	switch s.format {
	case pixfmt.RGB:
		off := y*s.stride + x*3
		s.data[off], s.data[off+1], s.data[off+2] = px.R, px.G, px.B
	case pixfmt.RGBA:
		off := y*s.stride + x*4
		s.data[off], s.data[off+1], s.data[off+2], s.data[off+3] = px.R, px.G, px.B, px.A
	case pixfmt.Alpha8:
		s.data[y*s.stride+x] = px.A
	default:
		bits := s.format.Bits()
		perByte := 8 / bits
		idx := y*s.width + x
		byteIdx := idx / perByte
		shift := uint(idx%perByte) * uint(bits)
		mask := byte(s.format.Max()) << shift
		s.data[byteIdx] = s.data[byteIdx]&^mask | (px.A<<shift)&mask
	}
}

// SrcOver composites src onto s at device offset (dstX, dstY) using the
// srcOver formula, pixel by pixel. Both surfaces must share a format.
func (s *Surface) SrcOver(src *Surface, dstX, dstY int) error {
	return s.composite(src, dstX, dstY, pixfmt.SrcOver)
}

// DstIn composites src onto s at device offset (dstX, dstY) using the
// dstIn formula, pixel by pixel. Both surfaces must share a format.
func (s *Surface) DstIn(src *Surface, dstX, dstY int) error {
	return s.composite(src, dstX, dstY, pixfmt.DstIn)
}

func (s *Surface) composite(src *Surface, dstX, dstY int, op func(dst, src pixfmt.Pixel) pixfmt.Pixel) error {
	if src.format != s.format {
		return ErrFormatMismatch
	}
	for y := 0; y < src.height; y++ {
		ty := dstY + y
		if ty < 0 || ty >= s.height {
			continue
		}
		for x := 0; x < src.width; x++ {
			tx := dstX + x
			if tx < 0 || tx >= s.width {
				continue
			}
			sp, _ := src.GetPixel(x, y)
			dp, _ := s.GetPixel(tx, ty)
			s.PutPixel(tx, ty, op(dp, sp))
		}
	}
	return nil
}

// PaintPixel fills every pixel of s with px. For packed-alpha formats this
// is a dense byte fill with the replicated bit pattern for px's value, with
// a zero value short-circuiting to a bulk zero fill.
func (s *Surface) PaintPixel(px pixfmt.Pixel) {
	if !s.format.IsPacked() {
		for y := 0; y < s.height; y++ {
			for x := 0; x < s.width; x++ {
				s.PutPixel(x, y, px)
			}
		}
		return
	}

	v := px.CopySrc(s.format).A
	if v == 0 {
		for i := range s.data {
			s.data[i] = 0
		}
		return
	}

	bits := s.format.Bits()
	perByte := 8 / bits
	var pattern byte
	for i := 0; i < perByte; i++ {
		pattern |= v << uint(i*bits)
	}
	for i := range s.data {
		s.data[i] = pattern
	}
}

// Downsample box-averages every downsampleScale x downsampleScale block of
// s and replaces its contents in place with the result, at new dimensions
// floor(width/downsampleScale) x floor(height/downsampleScale), each
// raised to 1 where it would be 0. Only valid
// on owned surfaces: a borrowed buffer cannot be resized out from under
// its owner.
func (s *Surface) Downsample() error {
	if !s.owned {
		return ErrBufferNotOwned
	}
	newW := s.width / downsampleScale
	newH := s.height / downsampleScale
	// A surface smaller than one full block still downsamples to a single
	// pixel, and a 1x1 surface downsamples to itself; the averaging loop
	// below only counts in-range samples, so both cases fall out of the
	// same arithmetic.
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	out, err := New(s.format, newW, newH)
	if err != nil {
		return err
	}

	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			var sum [4]uint32
			var samples uint32
			for dy := 0; dy < downsampleScale; dy++ {
				for dx := 0; dx < downsampleScale; dx++ {
					px, ok := s.GetPixel(x*downsampleScale+dx, y*downsampleScale+dy)
					if !ok {
						continue
					}
					samples++
					sum[0] += uint32(px.R)
					sum[1] += uint32(px.G)
					sum[2] += uint32(px.B)
					sum[3] += uint32(px.A)
				}
			}
			if samples == 0 {
				continue
			}
			out.PutPixel(x, y, pixfmt.Pixel{
				Format: s.format,
				R:      uint8(sum[0] / samples),
				G:      uint8(sum[1] / samples),
				B:      uint8(sum[2] / samples),
				A:      uint8(sum[3] / samples),
			})
		}
	}

	s.data = out.data
	s.width = out.width
	s.height = out.height
	s.stride = out.stride
	return nil
}
