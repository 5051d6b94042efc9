package tlbmetrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/tlbcodec/tlb/tlbmetrics"
)

func TestCollectRegistersAllCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, tlbmetrics.Collect(reg))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 4)
}

func TestCellsSerializedIncrements(t *testing.T) {
	before := readCounter(t, tlbmetrics.CellsSerialized)
	tlbmetrics.CellsSerialized.Add(3)
	after := readCounter(t, tlbmetrics.CellsSerialized)
	require.Equal(t, before+3, after)
}

func readCounter(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
