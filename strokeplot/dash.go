package strokeplot

import "github.com/inkraster/raster2d/path"

// dashRun is one on-segment produced by walking a dash pattern along a
// polyline's arc length.
type dashRun struct {
	points path.Polyline
}

// dashRuns walks pts (closing it back to pts[0] first if closed) by arc
// length, alternating on/off per d.Pattern starting at d.Offset, and
// returns one dashRun per on-segment. A positive offset fast-forwards the
// starting phase; a negative offset rewinds it (both by wrapping through
// the pattern's total period). Zero-length off-segments collapse to
// nothing (no gap); zero-length on-segments still produce a one-point run
// so the caller can render the configured cap as a dot or square.
//
// pts must already have any closing-duplicate vertex stripped (the
// caller's responsibility, same normalization expandRun applies) so the
// closing edge this function adds for a closed sub-path has non-zero
// length whenever the sub-path itself does.
func dashRuns(pts path.Polyline, closed bool, d Dash) []dashRun {
	walk := pts
	if closed {
		walk = append(append(path.Polyline{}, pts...), pts[0])
	}

	idx, remaining := startPhase(d)
	on := idx%2 == 0

	var runs []dashRun
	var current path.Polyline

	// advance steps past every zero-length pattern entry starting at
	// position at, emitting a dot run for each zero-length on-entry, and
	// leaves `current` seeded for the (necessarily non-zero, unless the
	// whole pattern is zero which resolve/valid already excludes) run now
	// in progress.
	advance := func(at path.Point) {
		for remaining <= 0 {
			if on {
				runs = append(runs, dashRun{points: path.Polyline{at}})
			}
			idx = (idx + 1) % len(d.Pattern)
			on = idx%2 == 0
			remaining = d.Pattern[idx]
		}
		if on {
			current = path.Polyline{at}
		}
	}
	advance(walk[0])

	for i := 0; i+1 < len(walk); i++ {
		a, b := walk[i], walk[i+1]
		segLen := distance(a, b)
		pos := 0.0

		for pos < segLen {
			step := segLen - pos
			if remaining < step {
				step = remaining
			}
			pos += step
			remaining -= step

			t := pos / segLen
			at := path.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
			if on {
				current = append(current, at)
			}

			if remaining <= 1e-12 {
				if on && len(current) > 0 {
					runs = append(runs, dashRun{points: current})
				}
				current = nil
				idx = (idx + 1) % len(d.Pattern)
				on = idx%2 == 0
				remaining = d.Pattern[idx]
				advance(at)
			}
		}
	}
	if on && len(current) > 1 {
		runs = append(runs, dashRun{points: current})
	}
	return runs
}

// startPhase resolves d.Offset into a starting pattern index and the arc
// length remaining in that index's run, wrapping through the pattern's
// total period in either direction. d.Pattern is assumed valid (non-empty,
// no negatives, total > 0) per Dash.valid.
func startPhase(d Dash) (idx int, remaining float64) {
	total := 0.0
	for _, l := range d.Pattern {
		total += l
	}

	off := d.Offset
	for off < 0 {
		off += total
	}
	for off >= total {
		off -= total
	}

	i := 0
	for off > 0 && off >= d.Pattern[i] {
		off -= d.Pattern[i]
		i = (i + 1) % len(d.Pattern)
	}
	return i, d.Pattern[i] - off
}
