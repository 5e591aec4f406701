package compositor

import (
	"github.com/inkraster/raster2d"
	"github.com/inkraster/raster2d/pixfmt"
	"github.com/inkraster/raster2d/wide"
)

// Stride is a view over a contiguous run of RGBA-encoded pixel bytes
// within a surface row, the unit the compositor blends in bulk rather
// than pixel by pixel. Surface.Stride produces these; RunStride
// consumes them.
type Stride struct {
	Data []byte // length must be a multiple of 4 (RGBA bytes)
	Len  int    // pixel count; len(Data) == Len*4
}

// RunStride applies op across every pixel of src into dst in place,
// processing wide.LaneWidth pixels at a time through a wide.Batch and
// falling back to the scalar Apply for the remainder. Both strides must
// have equal, matching length. Operators that RequiresFloat degrade to
// Clear here, same as Apply — callers needing exact non-separable blend
// results must convert the span to color.Linear and call ApplyLinear
// per pixel instead; there is no batched float path.
func RunStride(op Operator, dst, src Stride) {
	n := dst.Len
	if src.Len < n {
		n = src.Len
	}

	batched := n - n%wide.LaneWidth
	var batch wide.Batch
	for i := 0; i < batched; i += wide.LaneWidth {
		off := i * 4
		batch.LoadSrc(src.Data[off:])
		batch.LoadDst(dst.Data[off:])
		applyBatch(op, &batch)
		batch.StoreDst(dst.Data[off:])
	}

	for i := batched; i < n; i++ {
		off := i * 4
		d := pixfmt.Pixel{Format: pixfmt.RGBA, R: dst.Data[off], G: dst.Data[off+1], B: dst.Data[off+2], A: dst.Data[off+3]}
		s := pixfmt.Pixel{Format: pixfmt.RGBA, R: src.Data[off], G: src.Data[off+1], B: src.Data[off+2], A: src.Data[off+3]}
		r := Apply(op, d, s)
		dst.Data[off], dst.Data[off+1], dst.Data[off+2], dst.Data[off+3] = r.R, r.G, r.B, r.A
	}
}

// applyBatch runs op across all 16 lanes of b. Only the Porter-Duff
// operators are expressed as per-channel U16x16 formulas evaluated on
// all lanes at once; the integer separable blend modes run lane by lane
// through the scalar applySeparableBlend, and float-only operators clear
// every lane, the same degrade-to-clear rule as the scalar path.
func applyBatch(op Operator, b *wide.Batch) {
	if op.RequiresFloat() {
		raster2d.Logger().Debug("compositor: batch path degrades float-only operator to clear", "operator", op)
		*b = wide.Batch{}
		return
	}

	if op <= Plus {
		applyPorterDuffBatch(op, b)
		return
	}

	// Separable blend modes need per-lane unpremultiply/divide that
	// isn't expressible as a closed-form U16x16 formula; process lane by
	// lane through the scalar separable path instead.
	for i := 0; i < wide.LaneWidth; i++ {
		s := pixfmt.Pixel{Format: pixfmt.RGBA, R: uint8(b.SR[i]), G: uint8(b.SG[i]), B: uint8(b.SB[i]), A: uint8(b.SA[i])}
		d := pixfmt.Pixel{Format: pixfmt.RGBA, R: uint8(b.DR[i]), G: uint8(b.DG[i]), B: uint8(b.DB[i]), A: uint8(b.DA[i])}
		r, g, bl, a := applySeparableBlend(op, s, d)
		b.DR[i], b.DG[i], b.DB[i], b.DA[i] = uint16(r), uint16(g), uint16(bl), uint16(a)
	}
}

func applyPorterDuffBatch(op Operator, b *wide.Batch) {
	switch op {
	case Clear:
		*b = wide.Batch{SR: b.SR, SG: b.SG, SB: b.SB, SA: b.SA}
	case Source:
		b.DR, b.DG, b.DB, b.DA = b.SR, b.SG, b.SB, b.SA
	case Destination:
		// Destination unchanged.
	case SourceOver:
		invSa := b.SA.Inv(255)
		b.DR = b.SR.Add(b.DR.MulDiv255(invSa)).Clamp(255)
		b.DG = b.SG.Add(b.DG.MulDiv255(invSa)).Clamp(255)
		b.DB = b.SB.Add(b.DB.MulDiv255(invSa)).Clamp(255)
		b.DA = b.SA.Add(b.DA).Sub(b.SA.MulDiv255(b.DA)).Clamp(255)
	case DestinationOver:
		invDa := b.DA.Inv(255)
		b.DR = b.SR.MulDiv255(invDa).Add(b.DR).Clamp(255)
		b.DG = b.SG.MulDiv255(invDa).Add(b.DG).Clamp(255)
		b.DB = b.SB.MulDiv255(invDa).Add(b.DB).Clamp(255)
		b.DA = b.SA.Add(b.DA).Sub(b.SA.MulDiv255(b.DA)).Clamp(255)
	case SourceIn:
		b.DR = b.SR.MulDiv255(b.DA)
		b.DG = b.SG.MulDiv255(b.DA)
		b.DB = b.SB.MulDiv255(b.DA)
		b.DA = b.SA.MulDiv255(b.DA)
	case DestinationIn:
		b.DR = b.DR.MulDiv255(b.SA)
		b.DG = b.DG.MulDiv255(b.SA)
		b.DB = b.DB.MulDiv255(b.SA)
		b.DA = b.DA.MulDiv255(b.SA)
	case SourceOut:
		invDa := b.DA.Inv(255)
		b.DR = b.SR.MulDiv255(invDa)
		b.DG = b.SG.MulDiv255(invDa)
		b.DB = b.SB.MulDiv255(invDa)
		b.DA = b.SA.MulDiv255(invDa)
	case DestinationOut:
		invSa := b.SA.Inv(255)
		b.DR = b.DR.MulDiv255(invSa)
		b.DG = b.DG.MulDiv255(invSa)
		b.DB = b.DB.MulDiv255(invSa)
		b.DA = b.DA.MulDiv255(invSa)
	case SourceAtop:
		invSa := b.SA.Inv(255)
		b.DR = b.SR.MulDiv255(b.DA).Add(b.DR.MulDiv255(invSa)).Clamp(255)
		b.DG = b.SG.MulDiv255(b.DA).Add(b.DG.MulDiv255(invSa)).Clamp(255)
		b.DB = b.SB.MulDiv255(b.DA).Add(b.DB.MulDiv255(invSa)).Clamp(255)
		// DA unchanged.
	case DestinationAtop:
		invDa := b.DA.Inv(255)
		b.DR = b.SR.MulDiv255(invDa).Add(b.DR.MulDiv255(b.SA)).Clamp(255)
		b.DG = b.SG.MulDiv255(invDa).Add(b.DG.MulDiv255(b.SA)).Clamp(255)
		b.DB = b.SB.MulDiv255(invDa).Add(b.DB.MulDiv255(b.SA)).Clamp(255)
		b.DA = b.SA
	case Xor:
		invDa := b.DA.Inv(255)
		invSa := b.SA.Inv(255)
		b.DR = b.SR.MulDiv255(invDa).Add(b.DR.MulDiv255(invSa)).Clamp(255)
		b.DG = b.SG.MulDiv255(invDa).Add(b.DG.MulDiv255(invSa)).Clamp(255)
		b.DB = b.SB.MulDiv255(invDa).Add(b.DB.MulDiv255(invSa)).Clamp(255)
		b.DA = b.SA.MulDiv255(invDa).Add(b.DA.MulDiv255(invSa)).Clamp(255)
	default: // Plus
		b.DR = b.SR.Add(b.DR).Clamp(255)
		b.DG = b.SG.Add(b.DG).Clamp(255)
		b.DB = b.SB.Add(b.DB).Clamp(255)
		b.DA = b.SA.Add(b.DA).Clamp(255)
	}
}
