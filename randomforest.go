package changeforest

import "github.com/mlondschien/changeforest-go/internal/forest"

// RandomForestClassifier predicts via the out-of-bag estimate of a
// regression forest fit on 0/1 labels, per spec.md §4.5. Rows that never
// land out-of-bag (possible with few trees or small segments) fall back
// to the class prior.
type RandomForestClassifier struct {
	X       [][]float64
	control Control
}

// NewRandomForestClassifier returns a Classifier over X using control's
// random_forest_parameters.
func NewRandomForestClassifier(X [][]float64, control Control) *RandomForestClassifier {
	return &RandomForestClassifier{X: X, control: control}
}

func (c *RandomForestClassifier) N() int           { return len(c.X) }
func (c *RandomForestClassifier) Control() Control { return c.control }

func (c *RandomForestClassifier) Predict(start, stop, split int) []float64 {
	n := stop - start
	Xseg := c.X[start:stop]
	y := make([]float64, n)
	for i := range y {
		if start+i < split {
			y[i] = 0
		} else {
			y[i] = 1
		}
	}

	rfp := c.control.randomForestParameters
	nFeatures := 0
	if len(Xseg) > 0 {
		nFeatures = len(Xseg[0])
	}
	params := forest.Params{
		NTrees:      rfp.NTrees,
		MaxDepth:    rfp.MaxDepth,
		MaxFeatures: rfp.MaxFeatures.resolve(nFeatures),
		NJobs:       rfp.NJobs,
		// Salted with start/stop/split so repeated calls within the same
		// run are deterministic yet distinct across hypothesized splits,
		// per spec.md §5's determinism requirement.
		Seed: int64(c.control.seed) ^ int64(start)<<40 ^ int64(stop)<<20 ^ int64(split),
	}

	leftPrior := float64(stop-split) / float64(stop-start-1)
	rightPrior := float64(stop-split-1) / float64(stop-start-1)
	fallback := func(i int) float64 {
		if start+i < split {
			return leftPrior
		}
		return rightPrior
	}

	return forest.FitOOB(Xseg, y, params, fallback)
}
