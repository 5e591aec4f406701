package painter

import "errors"

// ErrPathNotClosed is returned by Fill when the node list contains a
// sub-path that never reaches ClosePath: filling an open contour is
// ambiguous (which edge would close the region?), so Fill refuses rather
// than guessing.
var ErrPathNotClosed = errors.New("painter: path is not closed")

// ErrInvalidMatrix is returned by Stroke when opts.Transform's linear
// part is singular (determinant zero) but not the unset zero value: a
// non-invertible transform collapses the stroke's width correction to an
// undefined scale factor.
var ErrInvalidMatrix = errors.New("painter: transform is not invertible")
