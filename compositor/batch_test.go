package compositor

import (
	"testing"

	"github.com/inkraster/raster2d/pixfmt"
	"github.com/inkraster/raster2d/wide"
)

func makeSpan(n int, r, g, b, a uint8) []byte {
	data := make([]byte, n*4)
	for i := 0; i < n; i++ {
		o := i * 4
		data[o], data[o+1], data[o+2], data[o+3] = r, g, b, a
	}
	return data
}

func TestRunStrideSourceOverMatchesScalarApplyAcrossFullBatch(t *testing.T) {
	n := wide.LaneWidth
	src := Stride{Data: makeSpan(n, 255, 0, 0, 128), Len: n}
	dst := Stride{Data: makeSpan(n, 0, 255, 0, 255), Len: n}

	RunStride(SourceOver, dst, src)

	for i := 0; i < n; i++ {
		o := i * 4
		r, g, b, a := dst.Data[o], dst.Data[o+1], dst.Data[o+2], dst.Data[o+3]
		if r != 255 || g != 127 || b != 0 || a != 255 {
			t.Fatalf("pixel %d = (%d,%d,%d,%d), want (255,127,0,255)", i, r, g, b, a)
		}
	}
}

func TestRunStrideHandlesNonMultipleOfLaneWidthRemainder(t *testing.T) {
	n := wide.LaneWidth + 3
	src := Stride{Data: makeSpan(n, 255, 0, 0, 128), Len: n}
	dst := Stride{Data: makeSpan(n, 0, 255, 0, 255), Len: n}

	RunStride(SourceOver, dst, src)

	for i := 0; i < n; i++ {
		o := i * 4
		r, g, b, a := dst.Data[o], dst.Data[o+1], dst.Data[o+2], dst.Data[o+3]
		if r != 255 || g != 127 || b != 0 || a != 255 {
			t.Fatalf("pixel %d (remainder region included) = (%d,%d,%d,%d), want (255,127,0,255)", i, r, g, b, a)
		}
	}
}

// Every operator must produce bit-identical results through the batched
// lane path and the scalar remainder path: a stride one pixel longer
// than the lane width exercises both on the same inputs, and every
// pixel pair in it is distinct.
func TestRunStrideMatchesScalarApplyForEveryOperator(t *testing.T) {
	n := wide.LaneWidth + 1
	operators := []Operator{
		Clear, Source, Destination, SourceOver, DestinationOver,
		SourceIn, DestinationIn, SourceOut, DestinationOut,
		SourceAtop, DestinationAtop, Xor, Plus,
		Multiply, Screen, Overlay, Darken, Lighten, HardLight,
		Difference, Exclusion,
		ColorDodge, ColorBurn, SoftLight, Hue, Saturation, Color, Luminosity,
	}

	for _, op := range operators {
		srcData := make([]byte, n*4)
		dstData := make([]byte, n*4)
		for i := 0; i < n; i++ {
			o := i * 4
			a := byte(7 * i % 256)
			// Premultiplied: color channels never exceed alpha.
			srcData[o+3] = a
			srcData[o] = byte(uint16(a) * 3 / 4)
			srcData[o+1] = byte(uint16(a) / 2)
			srcData[o+2] = byte(uint16(a) / 3)
			da := byte(255 - 5*i%256)
			dstData[o+3] = da
			dstData[o] = byte(uint16(da) / 5)
			dstData[o+1] = byte(uint16(da) * 2 / 3)
			dstData[o+2] = da
		}

		got := Stride{Data: append([]byte(nil), dstData...), Len: n}
		RunStride(op, got, Stride{Data: srcData, Len: n})

		for i := 0; i < n; i++ {
			o := i * 4
			d := pixfmt.New(pixfmt.RGBA, dstData[o], dstData[o+1], dstData[o+2], dstData[o+3])
			s := pixfmt.New(pixfmt.RGBA, srcData[o], srcData[o+1], srcData[o+2], srcData[o+3])
			want := Apply(op, d, s)
			if got.Data[o] != want.R || got.Data[o+1] != want.G || got.Data[o+2] != want.B || got.Data[o+3] != want.A {
				t.Fatalf("%v pixel %d = (%d,%d,%d,%d), scalar Apply = %+v",
					op, i, got.Data[o], got.Data[o+1], got.Data[o+2], got.Data[o+3], want)
			}
		}
	}
}

func TestRunStrideClearZeroesDestination(t *testing.T) {
	n := wide.LaneWidth
	src := Stride{Data: makeSpan(n, 10, 20, 30, 40), Len: n}
	dst := Stride{Data: makeSpan(n, 200, 150, 100, 255), Len: n}

	RunStride(Clear, dst, src)

	for i := 0; i < n; i++ {
		o := i * 4
		for c := 0; c < 4; c++ {
			if dst.Data[o+c] != 0 {
				t.Fatalf("pixel %d channel %d = %d, want 0", i, c, dst.Data[o+c])
			}
		}
	}
}

func TestRunStrideFloatOnlyOperatorDegradesToClear(t *testing.T) {
	n := wide.LaneWidth
	src := Stride{Data: makeSpan(n, 200, 150, 100, 255), Len: n}
	dst := Stride{Data: makeSpan(n, 10, 20, 30, 255), Len: n}

	RunStride(Hue, dst, src)

	for i := 0; i < n; i++ {
		o := i * 4
		for c := 0; c < 4; c++ {
			if dst.Data[o+c] != 0 {
				t.Fatalf("pixel %d channel %d = %d, want 0 (degrade to clear)", i, c, dst.Data[o+c])
			}
		}
	}
}
