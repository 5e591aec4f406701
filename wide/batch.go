package wide

// Batch holds 16 RGBA pixels in Structure-of-Arrays layout:
//
//	SR: [R0, R1, ..., R15]   SG, SB, SA similarly for source
//	DR: [R0, R1, ..., R15]   DG, DB, DA similarly for destination
//
// instead of the Array-of-Structures [R0,G0,B0,A0, R1,G1,B1,A1, ...]
// layout pixel buffers are stored in. The compositor loads a 16-pixel
// span from two surfaces into a Batch, runs an operator across all 16
// lanes (Porter-Duff operators as per-channel U16x16 formulas, separable
// blend modes lane by lane), then stores the destination channels back
// out.
type Batch struct {
	SR, SG, SB, SA U16x16
	DR, DG, DB, DA U16x16
}

// LaneWidth is the number of pixels a Batch processes per load/store
// cycle.
const LaneWidth = 16

// LoadSrc reads 16 premultiplied RGBA pixels (4 bytes each) from src
// into the batch's source channels. src must hold at least
// LaneWidth*4 bytes.
func (b *Batch) LoadSrc(src []byte) {
	for i := 0; i < LaneWidth; i++ {
		o := i * 4
		b.SR[i] = uint16(src[o+0])
		b.SG[i] = uint16(src[o+1])
		b.SB[i] = uint16(src[o+2])
		b.SA[i] = uint16(src[o+3])
	}
}

// LoadDst reads 16 premultiplied RGBA pixels from dst into the batch's
// destination channels.
func (b *Batch) LoadDst(dst []byte) {
	for i := 0; i < LaneWidth; i++ {
		o := i * 4
		b.DR[i] = uint16(dst[o+0])
		b.DG[i] = uint16(dst[o+1])
		b.DB[i] = uint16(dst[o+2])
		b.DA[i] = uint16(dst[o+3])
	}
}

// StoreDst writes the batch's destination channels back to dst as
// premultiplied RGBA bytes. Channel values are assumed already clamped
// to [0,255].
func (b *Batch) StoreDst(dst []byte) {
	for i := 0; i < LaneWidth; i++ {
		o := i * 4
		dst[o+0] = uint8(b.DR[i])
		dst[o+1] = uint8(b.DG[i])
		dst[o+2] = uint8(b.DB[i])
		dst[o+3] = uint8(b.DA[i])
	}
}
