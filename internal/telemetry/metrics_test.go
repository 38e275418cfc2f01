package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLoadObserver(t *testing.T) {
	var obs LoadObserver

	before := testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("test", "ok"))
	obs.LoadCompleted("test", 20*time.Millisecond, 42, nil)
	assert.Equal(t, before+1, testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("test", "ok")))
	assert.Equal(t, float64(42), testutil.ToFloat64(DatasetRows.WithLabelValues("test")))

	obs.LoadCompleted("test", time.Millisecond, 0, errors.New("boom"))
	assert.Equal(t, float64(1), testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("test", "error")))
	assert.Equal(t, float64(42), testutil.ToFloat64(DatasetRows.WithLabelValues("test")))

	obs.MemoHit("test")
	assert.Equal(t, float64(1), testutil.ToFloat64(DatasetMemoHitsTotal.WithLabelValues("test")))
}
