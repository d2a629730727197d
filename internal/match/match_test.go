package match

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimilarityIgnoresPunctuation(t *testing.T) {
	// colon variants of the same title must still pair up
	score := Similarity("Dune Teil Zwei", "Dune: Teil Zwei")
	require.Greater(t, score, 0.7)
}

func TestSelfMatchAlwaysWins(t *testing.T) {
	candidates := []string{
		"Der wilde Roboter",
		"Dune: Teil Zwei",
		"Alter weißer Mann",
	}

	for _, title := range candidates {
		best, score, ok := Closest(title, candidates, 0.2)
		require.True(t, ok)
		require.Equal(t, title, best)
		require.InDelta(t, 1.0, score, 1e-9)
	}
}

func TestClosestRejectsBelowThreshold(t *testing.T) {
	_, _, ok := Closest("Vaiana 2", []string{"Konklave", "Wicked"}, 0.2)
	require.False(t, ok)

	// a score exactly at the threshold is rejected too
	_, _, ok = Closest("anything", nil, 0)
	require.False(t, ok)
}

func TestClosestPicksBestCandidate(t *testing.T) {
	best, score, ok := Closest("Dune Teil Zwei", []string{
		"Der wilde Roboter",
		"Dune: Teil Zwei",
		"Gladiator II",
	}, 0.2)
	require.True(t, ok)
	require.Equal(t, "Dune: Teil Zwei", best)
	require.Greater(t, score, 0.7)
}

func TestSimilarityPrefixBonus(t *testing.T) {
	// sequels sharing the franchise prefix score higher than unrelated titles
	sequel := Similarity("Sonic the Hedgehog 3", "Sonic the Hedgehog 2")
	unrelated := Similarity("Sonic the Hedgehog 3", "Der wilde Roboter")
	require.Greater(t, sequel, unrelated)
	require.Greater(t, sequel, 0.7)
}
