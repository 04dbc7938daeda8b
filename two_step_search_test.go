package changeforest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstRoundGuessesSnapToCandidates(t *testing.T) {
	// start=0, stop=100: raw quartile guesses are exactly 25, 50, 75.
	candidates := make([]int, 0, 99)
	for i := 1; i < 100; i++ {
		candidates = append(candidates, i)
	}
	guesses := firstRoundGuesses(0, 100, candidates)
	assert.Equal(t, [3]int{25, 50, 75}, guesses)
}

func TestFirstRoundGuessesFallBackToCandidateQuartiles(t *testing.T) {
	// Exclude every raw quartile guess (25, 50, 75) from the candidate set
	// so none of them qualify; the guesses should fall back to quartiles
	// of the candidate list itself.
	var candidates []int
	for i := 1; i < 100; i++ {
		if i == 25 || i == 50 || i == 75 {
			continue
		}
		candidates = append(candidates, i)
	}
	guesses := firstRoundGuesses(0, 100, candidates)
	n := len(candidates)
	assert.Equal(t, candidates[n/4], guesses[0])
	assert.Equal(t, candidates[n/2], guesses[1])
	assert.Equal(t, candidates[min(3*n/4, n-1)], guesses[2])
}

func TestNearestCandidate(t *testing.T) {
	candidates := []int{2, 5, 9, 20}
	assert.Equal(t, 2, nearestCandidate(3, candidates))
	assert.Equal(t, 5, nearestCandidate(6, candidates))
	assert.Equal(t, 20, nearestCandidate(100, candidates))
}

// TestTwoStepSearchFindsCleanStepBreak checks that TwoStepSearch recovers
// an exact mean shift: a classifier whose prediction is a clean step
// function at index m should yield a best split at (or immediately next
// to) m, with both first-round and refit GainResults recorded.
func TestTwoStepSearchFindsCleanStepBreak(t *testing.T) {
	n := 100
	m := 40
	values := make([]float64, n)
	for i := range values {
		if i < m {
			values[i] = 0.05
		} else {
			values[i] = 0.95
		}
	}
	control := NewControl()
	classifier := &fakeClassifier{n: n, values: values, control: control}
	gain := NewClassifierGain(classifier)
	optimizer := NewTwoStepSearch(gain)

	result, err := optimizer.FindBestSplit(0, n)
	require.NoError(t, err)
	assert.InDelta(t, m, result.BestSplit, 2)
	assert.Len(t, result.GainResults, 4)
	for _, r := range result.GainResults {
		assert.NotNil(t, r.ApproxGain)
	}
}
