package changeforest

import (
	"math"
	"math/rand"
)

// SegmentationType selects how auxiliary parent intervals are generated,
// per spec.md §4.6.
type SegmentationType int

const (
	BS SegmentationType = iota
	WBS
	SBS
)

// ParseSegmentationType maps the external string vocabulary ("bs", "wbs",
// "sbs") onto a SegmentationType.
func ParseSegmentationType(s string) (SegmentationType, error) {
	switch s {
	case "bs":
		return BS, nil
	case "wbs":
		return WBS, nil
	case "sbs":
		return SBS, nil
	default:
		return 0, ErrInvalidSegmentationType
	}
}

// Segmentation owns an Optimizer and a growing list of auxiliary parent
// intervals scored upfront (none for BS, random draws for WBS, a
// deterministic multi-scale family for SBS), per spec.md §4.6. Insertion
// order is preserved for reproducibility: wild/seeded segments retain
// generation order, and every FindBestSplit call appends its own result
// regardless of whether an auxiliary segment won.
type Segmentation struct {
	segmentationType SegmentationType
	optimizer        Optimizer
	segments         []OptimizerResult
}

// NewSegmentation builds a Segmentation and eagerly generates the
// auxiliary segments for segmentationType.
func NewSegmentation(segmentationType SegmentationType, optimizer Optimizer) *Segmentation {
	s := &Segmentation{segmentationType: segmentationType, optimizer: optimizer}
	s.generateSegments()
	return s
}

// Segments returns the auxiliary parent intervals scored so far,
// including every interval queried through FindBestSplit, in the order
// they were produced.
func (s *Segmentation) Segments() []OptimizerResult { return s.segments }

func (s *Segmentation) generateSegments() {
	control := s.optimizer.Control()
	n := s.optimizer.N()

	switch s.segmentationType {
	case BS:
		// No auxiliary intervals; only [0, n) is ever queried.
	case WBS:
		rng := rand.New(rand.NewSource(int64(control.seed)))
		for len(s.segments) < control.numberOfWildSegments {
			a := rng.Intn(n + 1)
			b := rng.Intn(n + 1)
			if a >= b {
				continue
			}
			result, err := s.optimizer.FindBestSplit(a, b)
			if err != nil {
				continue // drawn interval had no valid split; skip it
			}
			s.segments = append(s.segments, result)
		}
	case SBS:
		deltaAbs := max(2*control.minimalSegmentLength(n), 2)
		K := int(math.Ceil(math.Log(float64(deltaAbs)/float64(n)) / math.Log(control.seededSegmentsAlpha)))
		for k := 1; k < K; k++ {
			alphaK := math.Pow(control.seededSegmentsAlpha, float64(k))
			Lk := float64(n) * alphaK
			Nk := 2*int(math.Ceil(1/alphaK)) - 1
			stepK := (float64(n) - Lk) / float64(Nk-1)
			for i := 0; i < Nk; i++ {
				start := int(math.Floor(float64(i) * stepK))
				stop := min(start+int(math.Ceil(Lk)), n)
				result, err := s.optimizer.FindBestSplit(start, stop)
				if err != nil {
					continue
				}
				s.segments = append(s.segments, result)
			}
		}
	}
}

// FindBestSplit queries the inner optimizer on [start, stop), then checks
// whether any pre-scored auxiliary segment nested inside [start, stop)
// has a higher max gain; if so, that segment's split is substituted. The
// locally computed result is always appended to segments, even when an
// auxiliary result wins, per spec.md §4.6 and §9.
func (s *Segmentation) FindBestSplit(start, stop int) (OptimizerResult, error) {
	local, err := s.optimizer.FindBestSplit(start, stop)
	if err != nil {
		return OptimizerResult{}, err
	}

	best := local
	for _, seg := range s.segments {
		if start <= seg.Start && seg.Stop <= stop && seg.MaxGain > best.MaxGain {
			best = seg
		}
	}

	s.segments = append(s.segments, local)
	return best, nil
}

// ModelSelection delegates to the wrapped optimizer's gain.
func (s *Segmentation) ModelSelection(result OptimizerResult) ModelSelectionResult {
	return s.optimizer.ModelSelection(result)
}
