// Package wide provides SIMD-friendly wide types for batch pixel
// processing: fixed-size-array lanes that the Go compiler can
// auto-vectorize on supported architectures (SSE, AVX, NEON), used by
// the compositor for its integer compositing path.
//
// # Wide Types
//
// U16x16 holds 16 uint16 lanes for integer blend math (alpha, color
// channels in [0,255] scratch precision). F32x8 holds 8 float32 lanes
// of per-lane float arithmetic; no other package of this module uses it.
//
// # Batch
//
// Batch holds 16 RGBA pixels in Structure-of-Arrays layout, the SIMD
// friendly shape the compositor's RunStride and RunBatch load surface
// spans into. Porter-Duff operators then run as one integer formula
// across all 16 lanes at once; separable blend modes run lane by lane.
//
// # Design
//
//   - Simple loops over fixed-size arrays, left to the compiler to
//     auto-vectorize; no unsafe, no assembly.
//   - golang.org/x/sys/cpu reports which SIMD feature sets are present,
//     exposed through SIMDFeature for operational visibility; lane width
//     stays fixed regardless of what's detected.
package wide

import "golang.org/x/sys/cpu"

// SIMDFeature names the widest SIMD instruction set detected on this
// CPU, or "none" when the compiler's auto-vectorization is all there is.
// The lane width does not change with the answer; this exists so a
// caller's logs record what the fixed-width loops compile down to.
func SIMDFeature() string {
	switch {
	case cpu.X86.HasAVX2:
		return "amd64/avx2"
	case cpu.X86.HasSSE41:
		return "amd64/sse4.1"
	case cpu.ARM64.HasASIMD:
		return "arm64/neon"
	default:
		return "none"
	}
}
