package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSyncRecordsItemCountAndRate(t *testing.T) {
	result, m := TimeSync("RemoveComments", 10, func() int {
		time.Sleep(time.Millisecond)
		return 42
	})
	assert.Equal(t, 42, result)
	assert.Equal(t, "RemoveComments", m.Name)
	require.NotNil(t, m.ItemCount)
	assert.Equal(t, 10, *m.ItemCount)
	require.NotNil(t, m.ItemsPerSecond)
	assert.Greater(t, m.DurationMs, 0.0)
}

func TestTimeSyncOmitsCountWhenNegative(t *testing.T) {
	_, m := TimeSync("noop", -1, func() int { return 0 })
	assert.Nil(t, m.ItemCount)
	assert.Nil(t, m.ItemsPerSecond)
}

func TestTimeAsyncPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := TimeAsync("fetch", 1, func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
}

func TestCollectorAggregatesStagesAndCounts(t *testing.T) {
	c := NewCollector()
	_, m1 := TimeSync("a", 3, func() int { return 0 })
	_, m2 := TimeSync("b", 5, func() int { return 0 })
	c.Record(m1)
	c.Record(m2)

	agg := c.Finish(2, 8, 5)
	assert.Len(t, agg.Stages, 2)
	assert.Equal(t, 2, agg.SourceCount)
	assert.Equal(t, 8, agg.RuleCount)
	assert.Equal(t, 5, agg.OutputRuleCount)
	assert.GreaterOrEqual(t, agg.TotalDurationMs, 0.0)
}
