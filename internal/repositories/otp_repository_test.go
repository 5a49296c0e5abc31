package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyCountStartsAtZero(t *testing.T) {
	repo := NewPostgresOTPRepository(setupTestDB(t))

	count, err := repo.GetDailyCount("visitor@example.com", "2026-03-14")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIncrementDailyCount(t *testing.T) {
	repo := NewPostgresOTPRepository(setupTestDB(t))

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.IncrementDailyCount("visitor@example.com", "2026-03-14"))
		count, err := repo.GetDailyCount("visitor@example.com", "2026-03-14")
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	// A different day keeps its own counter.
	count, err := repo.GetDailyCount("visitor@example.com", "2026-03-15")
	require.NoError(t, err)
	assert.Zero(t, count)

	// As does a different address.
	count, err = repo.GetDailyCount("other@example.com", "2026-03-14")
	require.NoError(t, err)
	assert.Zero(t, count)
}
