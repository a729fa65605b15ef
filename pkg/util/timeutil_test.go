package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.True(t, Expiry(now, 0).IsZero())
	deadline := Expiry(now, time.Minute)
	require.Equal(t, now.Add(time.Minute), deadline)

	require.False(t, Expired(now, deadline))
	require.True(t, Expired(deadline, deadline))
	require.False(t, Expired(now.Add(time.Hour), time.Time{}))
}
