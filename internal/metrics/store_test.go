package metrics

import (
	"testing"

	"github.com/mauv0809/padel-draw/internal/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (MetricsStore, func()) {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	return New(db), teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	totals, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, totals)

	store.Increment(KeyDrawsGenerated)
	totals, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{KeyDrawsGenerated: 1}, totals)

	store.Increment(KeyDrawsGenerated)
	store.Increment(KeyResultsRecorded)
	totals, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		KeyDrawsGenerated:  2,
		KeyResultsRecorded: 1,
	}, totals)
}

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncDrawsGenerated("ZONES")
	s.IncDrawsGenerated("ZONES")
	s.IncDrawsGenerated("ELIMINATION")
	s.IncResultsRecorded()
	s.IncAdvancementConflicts()
	s.ObserveDrawGenerationDuration(0.002)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.DrawsGenerated.WithLabelValues("ZONES")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.DrawsGenerated.WithLabelValues("ELIMINATION")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.ResultsRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.AdvancementConflicts))
	assert.Equal(t, 1, testutil.CollectAndCount(s.DrawGenerationDuration))
}

func TestMock(t *testing.T) {
	m := NewMock()
	m.IncDrawsGenerated("ZONES")
	m.IncSlackNotifFailed()
	m.ObserveDrawGenerationDuration(0.5)

	assert.Equal(t, 1, m.DrawsGenerated("ZONES"))
	assert.Equal(t, 0, m.DrawsGenerated("ELIMINATION"))
	assert.Equal(t, 1, m.SlackNotifFailed())
	assert.Equal(t, []float64{0.5}, m.GenerationDurations())
}
