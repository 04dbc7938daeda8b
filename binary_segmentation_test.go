package changeforest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meanShiftX(n int, breakpoints []int, means []float64) [][]float64 {
	X := make([][]float64, n)
	seg := 0
	for i := 0; i < n; i++ {
		for seg < len(breakpoints) && i >= breakpoints[seg] {
			seg++
		}
		noise := float64((i*37)%11) / 1000.0
		X[i] = []float64{means[seg] + noise, means[seg] - noise}
	}
	return X
}

func TestGrowTreeFindsSignificantSplit(t *testing.T) {
	X := meanShiftX(60, []int{30}, []float64{0, 5})
	control := NewControl()
	gain := NewChangeInMeanGain(X, control)
	optimizer := NewGridSearch(gain)
	segmentation := NewSegmentation(BS, optimizer)

	tree := growTree(0, 60, 60, segmentation)
	result := fromTree(tree)

	require.NotNil(t, result.OptimizerResult)
	assert.True(t, result.ModelSelectionResult.IsSignificant)
	assert.InDelta(t, 30, result.OptimizerResult.BestSplit, 2)

	points := result.SplitPoints()
	require.Len(t, points, 1)
	assert.InDelta(t, 30, points[0], 2)
}

func TestGrowTreeLeavesConstantDataUnsplit(t *testing.T) {
	X := meanShiftX(40, nil, []float64{0})
	control := NewControl()
	gain := NewChangeInMeanGain(X, control)
	optimizer := NewGridSearch(gain)
	segmentation := NewSegmentation(BS, optimizer)

	tree := growTree(0, 40, 40, segmentation)
	result := fromTree(tree)

	assert.False(t, result.ModelSelectionResult.IsSignificant)
	assert.Empty(t, result.SplitPoints())
}

func TestSplitPointsAreStrictlyIncreasing(t *testing.T) {
	X := meanShiftX(90, []int{30, 60}, []float64{0, 5, 0})
	control := NewControl()
	gain := NewChangeInMeanGain(X, control)
	optimizer := NewGridSearch(gain)
	segmentation := NewSegmentation(BS, optimizer)

	tree := growTree(0, 90, 90, segmentation)
	points := fromTree(tree).SplitPoints()

	require.GreaterOrEqual(t, len(points), 1)
	for i := 1; i < len(points); i++ {
		assert.Less(t, points[i-1], points[i])
	}
}

func TestSplitPointsNilOnNilResult(t *testing.T) {
	var result *BinarySegmentationResult
	assert.Nil(t, result.SplitPoints())
}

func TestFromTreeNilOnNilTree(t *testing.T) {
	assert.Nil(t, fromTree(nil))
}
