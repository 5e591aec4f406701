package surface

import (
	"testing"

	"github.com/inkraster/raster2d/pixfmt"
)

func TestNewRejectsInvalidDimensions(t *testing.T) {
	if _, err := New(pixfmt.RGBA, 0, 4); err != ErrInvalidWidth {
		t.Errorf("New(w=0) error = %v, want ErrInvalidWidth", err)
	}
	if _, err := New(pixfmt.RGBA, 4, -1); err != ErrInvalidHeight {
		t.Errorf("New(h=-1) error = %v, want ErrInvalidHeight", err)
	}
}

func TestPutGetPixelRoundTripRGBA(t *testing.T) {
	s, err := New(pixfmt.RGBA, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := pixfmt.Pixel{Format: pixfmt.RGBA, R: 10, G: 20, B: 30, A: 200}
	s.PutPixel(2, 1, want)
	got, ok := s.GetPixel(2, 1)
	if !ok || got != want {
		t.Errorf("GetPixel(2,1) = %+v, %v; want %+v, true", got, ok, want)
	}
}

func TestGetPixelOutOfRangeReturnsFalse(t *testing.T) {
	s, _ := New(pixfmt.RGB, 2, 2)
	if _, ok := s.GetPixel(-1, 0); ok {
		t.Error("GetPixel(-1,0) ok = true, want false")
	}
	if _, ok := s.GetPixel(2, 0); ok {
		t.Error("GetPixel(2,0) ok = true, want false")
	}
}

func TestPutPixelOutOfRangeIsNoop(t *testing.T) {
	s, _ := New(pixfmt.RGB, 2, 2)
	s.PutPixel(5, 5, pixfmt.Pixel{Format: pixfmt.RGB, R: 255})
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got, _ := s.GetPixel(x, y); got.R != 0 {
				t.Errorf("out-of-range PutPixel mutated (%d,%d)", x, y)
			}
		}
	}
}

// Packed-alpha formats pack multiple pixels per byte with pixel index 0 in
// the low bits; verify independent pixels in the same byte don't clobber
// each other.
func TestAlpha2PackingIndependentPixels(t *testing.T) {
	s, err := New(pixfmt.Alpha2, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	s.PutPixel(0, 0, pixfmt.Pixel{Format: pixfmt.Alpha2, A: 1})
	s.PutPixel(1, 0, pixfmt.Pixel{Format: pixfmt.Alpha2, A: 2})
	s.PutPixel(2, 0, pixfmt.Pixel{Format: pixfmt.Alpha2, A: 3})
	s.PutPixel(3, 0, pixfmt.Pixel{Format: pixfmt.Alpha2, A: 0})

	want := []uint8{1, 2, 3, 0}
	for x, w := range want {
		got, ok := s.GetPixel(x, 0)
		if !ok || got.A != w {
			t.Errorf("GetPixel(%d,0) = %d, %v; want %d, true", x, got.A, ok, w)
		}
	}
	if len(s.Data()) != 1 {
		t.Errorf("Alpha2 4-wide row stride = %d bytes, want 1", len(s.Data()))
	}
}

func TestAlpha1SingleRowBufferSize(t *testing.T) {
	s, _ := New(pixfmt.Alpha1, 9, 1)
	if len(s.Data()) != 2 {
		t.Errorf("Alpha1 9-pixel buffer = %d bytes, want 2", len(s.Data()))
	}
}

// Seed scenario 5: a 3x3 Alpha4 surface packs as a flat, row-unpadded
// bitstream (9 pixels * 4 bits = 36 bits -> 5 bytes), not per-row
// byte-aligned (which would produce 6 bytes, 2 per row).
func TestSeedScenarioAlpha4PackingIsFlatNotRowPadded(t *testing.T) {
	s, err := New(pixfmt.Alpha4, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	s.PutPixel(0, 0, pixfmt.Pixel{Format: pixfmt.Alpha4, A: 5})
	s.PutPixel(1, 1, pixfmt.Pixel{Format: pixfmt.Alpha4, A: 10})
	s.PutPixel(2, 2, pixfmt.Pixel{Format: pixfmt.Alpha4, A: 15})

	want := []byte{0x05, 0x00, 0x0A, 0x00, 0x0F}
	got := s.Data()
	if len(got) != len(want) {
		t.Fatalf("Data() = % x (%d bytes), want % x (%d bytes)", got, len(got), want, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Data()[%d] = 0x%02X, want 0x%02X", i, got[i], want[i])
		}
	}
}

func TestFromBufferBorrowsAndRejectsTooSmall(t *testing.T) {
	buf := make([]byte, 16)
	s, err := FromBuffer(pixfmt.RGBA, buf, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	s.PutPixel(0, 0, pixfmt.Pixel{Format: pixfmt.RGBA, R: 9, A: 255})
	if buf[0] != 9 {
		t.Error("FromBuffer surface did not write through to the caller's backing slice")
	}

	if _, err := FromBuffer(pixfmt.RGBA, make([]byte, 4), 2, 2); err != ErrBufferTooSmall {
		t.Errorf("FromBuffer undersized buffer error = %v, want ErrBufferTooSmall", err)
	}
}

func TestDownsampleOnBorrowedBufferFails(t *testing.T) {
	buf := make([]byte, 64)
	s, _ := FromBuffer(pixfmt.RGBA, buf, 4, 4)
	if err := s.Downsample(); err != ErrBufferNotOwned {
		t.Errorf("Downsample on borrowed surface error = %v, want ErrBufferNotOwned", err)
	}
}

func TestDownsampleAveragesBoxAndResizes(t *testing.T) {
	s, err := New(pixfmt.Alpha8, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Top-left 4x4 block: half the pixels at 0, half at 255 -> average 127 (floor).
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			s.PutPixel(x, y, pixfmt.Pixel{Format: pixfmt.Alpha8, A: v})
		}
	}
	if err := s.Downsample(); err != nil {
		t.Fatal(err)
	}
	if s.Width() != 2 || s.Height() != 1 {
		t.Fatalf("Downsample dims = %dx%d, want 2x1", s.Width(), s.Height())
	}
	got, _ := s.GetPixel(0, 0)
	if got.A != 127 {
		t.Errorf("Downsample average = %d, want 127", got.A)
	}
}

func TestDownsampleIdempotentAtOneByOne(t *testing.T) {
	s, err := New(pixfmt.RGBA, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	s.PaintPixel(pixfmt.Pixel{Format: pixfmt.RGBA, R: 40, G: 80, B: 120, A: 200})
	if err := s.Downsample(); err != nil {
		t.Fatal(err)
	}
	if s.Width() != 1 || s.Height() != 1 {
		t.Fatalf("first Downsample dims = %dx%d, want 1x1", s.Width(), s.Height())
	}
	first, _ := s.GetPixel(0, 0)

	if err := s.Downsample(); err != nil {
		t.Fatal(err)
	}
	if s.Width() != 1 || s.Height() != 1 {
		t.Fatalf("second Downsample dims = %dx%d, want 1x1", s.Width(), s.Height())
	}
	second, _ := s.GetPixel(0, 0)
	if second != first {
		t.Errorf("second Downsample pixel = %+v, want unchanged %+v", second, first)
	}
}

func TestPaintPixelPackedBulkFillAndZeroShortCircuit(t *testing.T) {
	s, _ := New(pixfmt.Alpha4, 4, 1)
	s.PaintPixel(pixfmt.Pixel{Format: pixfmt.Alpha4, A: 0b1010})
	for _, b := range s.Data() {
		if b != 0b10101010 {
			t.Errorf("PaintPixel bulk fill byte = %08b, want 10101010", b)
		}
	}

	s.PaintPixel(pixfmt.Pixel{Format: pixfmt.Alpha4, A: 0})
	for _, b := range s.Data() {
		if b != 0 {
			t.Errorf("PaintPixel(0) byte = %08b, want 0", b)
		}
	}
}

func TestSrcOverWholeSurface(t *testing.T) {
	dst, _ := NewFilled(pixfmt.RGBA, pixfmt.Pixel{Format: pixfmt.RGBA, R: 10, G: 10, B: 10, A: 255}, 2, 2)
	src, _ := NewFilled(pixfmt.RGBA, pixfmt.Pixel{Format: pixfmt.RGBA, R: 200, G: 0, B: 0, A: 255}, 2, 2)
	if err := dst.SrcOver(src, 0, 0); err != nil {
		t.Fatal(err)
	}
	got, _ := dst.GetPixel(0, 0)
	want := pixfmt.Pixel{Format: pixfmt.RGBA, R: 200, G: 0, B: 0, A: 255}
	if got != want {
		t.Errorf("SrcOver opaque src = %+v, want %+v", got, want)
	}
}

func TestSrcOverFormatMismatch(t *testing.T) {
	dst, _ := New(pixfmt.RGBA, 2, 2)
	src, _ := New(pixfmt.RGB, 2, 2)
	if err := dst.SrcOver(src, 0, 0); err != ErrFormatMismatch {
		t.Errorf("SrcOver format mismatch error = %v, want ErrFormatMismatch", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s, _ := New(pixfmt.RGB, 2, 2)
	s.PutPixel(0, 0, pixfmt.Pixel{Format: pixfmt.RGB, R: 5})
	c := s.Clone()
	c.PutPixel(0, 0, pixfmt.Pixel{Format: pixfmt.RGB, R: 9})
	orig, _ := s.GetPixel(0, 0)
	if orig.R != 5 {
		t.Errorf("Clone is aliased: original mutated to %d", orig.R)
	}
}
