package wide

import "github.com/inkraster/raster2d/pixfmt"

// RGBAVec holds LaneWidth premultiplied RGBA pixels, the shape a Pattern
// returns when the compositor asks for a whole span at once instead of
// one pixel at a time.
type RGBAVec [LaneWidth]pixfmt.Pixel

// ColorVec holds LaneWidth linear-RGB samples, the float-precision
// counterpart of RGBAVec, returned by a Pattern's GetColorVec.
type ColorVec [LaneWidth]Sample

// Sample is one lane's linear-RGB value; kept local to wide (rather than
// importing the color package's Linear type) so wide stays a leaf
// package with no dependency on anything above pixfmt.
type Sample struct {
	R, G, B, A float32
}
