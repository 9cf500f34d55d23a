package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/spending-nav/internal/model/customerr"
)

func Test_OnStart_ShouldReturnZeroTimeForAllTime(t *testing.T) {
	start, err := Start("")
	require.NoError(t, err)
	assert.True(t, start.IsZero())
}

func Test_OnStart_ShouldResolveKnownPeriods(t *testing.T) {
	for _, name := range []string{"week", "month", "year"} {
		start, err := Start(name)
		require.NoError(t, err)
		assert.False(t, start.IsZero())
		assert.False(t, start.After(time.Now()))
	}
}

func Test_OnStart_ShouldRejectUnknownPeriod(t *testing.T) {
	_, err := Start("quarter")
	assert.ErrorIs(t, err, customerr.ErrUnknownPeriod)
}

func Test_Names_ShouldIncludeAllSupportedPeriods(t *testing.T) {
	assert.ElementsMatch(t, []string{"", "week", "month", "year"}, Names())
}
