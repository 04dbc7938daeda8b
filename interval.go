package changeforest

// interval is a half-open range [start, stop) with 0 <= start < stop <= n.
type interval struct {
	start, stop int
}

func (iv interval) len() int { return iv.stop - iv.start }

// splitCandidates computes the set of indices x in [start+delta, stop-delta)
// not excluded by control.forbiddenSegments, per spec.md §4.4. delta is
// ceil(minimalRelativeSegmentLength * n). Returns errSegmentTooSmall if
// 2*delta >= stop-start, errNoCandidates if forbidden segments remove
// everything.
func splitCandidates(start, stop, n int, control Control) ([]int, error) {
	delta := control.minimalSegmentLength(n)
	if 2*delta >= stop-start {
		return nil, errSegmentTooSmall
	}

	candidates := make([]int, 0, stop-start-2*delta)
	for x := start + delta; x < stop-delta; x++ {
		if !isForbidden(x, control.forbiddenSegments) {
			candidates = append(candidates, x)
		}
	}
	if len(candidates) == 0 {
		return nil, errNoCandidates
	}
	return candidates, nil
}

// isForbidden reports whether x is excluded by any forbidden segment
// (a, b): x is dropped iff a < x <= b.
func isForbidden(x int, segments []ForbiddenSegment) bool {
	for _, s := range segments {
		if s.A < x && x <= s.B {
			return true
		}
	}
	return false
}
