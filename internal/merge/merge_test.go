package merge

import (
	"context"
	"testing"

	"kinoschurke/internal/kino"
	"kinoschurke/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMergeWithoutAttributeMatch(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:internal/merge")
	defer cleanup()

	schedules := []kino.ScheduleEntry{
		{
			Title:      "Dune: Teil Zwei",
			Attributes: []string{"2D"},
			Duration:   "166 min",
			Showtimes: []kino.DateShows{
				{
					Date: "2025-03-01",
					Shows: []kino.Show{
						{Time: "22:10", Theater: "Saal Kubrick", Attributes: []string{"2D"}},
					},
				},
			},
		},
	}

	merged := Merge(context.Background(), schedules, nil, nil, Config{})
	require.Len(t, merged, 1)

	m := merged[0]
	require.Equal(t, 0, m.ID)
	require.Equal(t, "Dune: Teil Zwei", m.Title)
	require.Equal(t, kino.UnknownDirector, m.Director)
	require.Equal(t, kino.UnknownGenre, m.Genre)
	require.Equal(t, kino.UnknownFSK, m.FSK)
	require.Equal(t, kino.PlaceholderPoster, m.PosterURL)
	require.Equal(t, kino.UnknownTrailerURL, m.TrailerURL)

	diff := cmp.Diff(schedules[0].Showtimes, m.Showtimes)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestMergeScheduleFieldsWin(t *testing.T) {
	schedules := []kino.ScheduleEntry{
		{
			Title:      "Dune Teil Zwei",
			Attributes: []string{"OmdU"},
			Duration:   "166 min",
		},
	}
	attributes := []kino.MovieAttributes{
		{
			Title:    "Dune: Teil Zwei",
			Duration: "165 min",
			Director: "Denis Villeneuve",
			Genre:    "Science-Fiction",
		},
	}

	merged := Merge(context.Background(), schedules, attributes, nil, Config{})
	require.Len(t, merged, 1)

	m := merged[0]
	// metadata comes from the matched attribute record
	require.Equal(t, "Denis Villeneuve", m.Director)
	require.Equal(t, "Science-Fiction", m.Genre)
	// identity fields stay with the schedule
	require.Equal(t, "Dune Teil Zwei", m.Title)
	require.Equal(t, "166 min", m.Duration)
	require.Equal(t, []string{"OmdU"}, m.Attributes)
}

func TestMergeExactlyOncePerScheduleEntry(t *testing.T) {
	schedules := []kino.ScheduleEntry{
		{Title: "Konklave"},
		{Title: "Der wilde Roboter"},
		{Title: "Konklave"},
	}
	attributes := []kino.MovieAttributes{
		{Title: "Konklave", Director: "Edward Berger"},
		// attribute-only movie, must not surface in the output
		{Title: "Wicked", Director: "Jon M. Chu"},
	}

	merged := Merge(context.Background(), schedules, attributes, nil, Config{})
	require.Len(t, merged, 3)
	for i, m := range merged {
		require.Equal(t, i, m.ID)
		require.Equal(t, schedules[i].Title, m.Title)
	}
	require.Equal(t, "Edward Berger", merged[0].Director)
	require.Equal(t, "Edward Berger", merged[2].Director)
}

func TestMergePosterBackfill(t *testing.T) {
	schedules := []kino.ScheduleEntry{
		{Title: "Der wilde Roboter"},
		{Title: "Konklave"},
		{Title: "Gladiator II"},
	}
	posters := []kino.Poster{
		{Title: "Der wilde Roboter", Src: "https://images.kinoheld.de/roboter.jpg"},
		// scrape failed for this one, must not overwrite the sentinel
		{Title: "Konklave", Src: kino.UnknownPosterURL},
	}

	merged := Merge(context.Background(), schedules, nil, posters, Config{})
	require.Equal(t, "https://images.kinoheld.de/roboter.jpg", merged[0].PosterURL)
	require.Equal(t, kino.PlaceholderPoster, merged[1].PosterURL)
	// no poster candidate close enough, placeholder stays
	require.Equal(t, kino.PlaceholderPoster, merged[2].PosterURL)
}
