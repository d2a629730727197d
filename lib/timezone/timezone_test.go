package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	require.Equal(t, "Europe/Berlin", Location.String())
	require.Equal(t, Location, Now().Location())
}

func TestNowIsCurrent(t *testing.T) {
	require.WithinDuration(t, time.Now(), Now(), time.Second)
}
