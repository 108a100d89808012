package sharedarray

import (
	"io"

	vm "github.com/VictoriaMetrics/metrics"
)

var (
	metricSet = vm.NewSet()

	storesCreated    = metricSet.NewCounter("sharedarray_stores_created_total")
	storesReleased   = metricSet.NewCounter("sharedarray_stores_released_total")
	reallocations    = metricSet.NewCounter("sharedarray_reallocations_total")
	illegalMutations = metricSet.NewCounter("sharedarray_illegal_mutations_total")
)

func init() {
	metricSet.NewGauge("sharedarray_stores_live", func() float64 {
		return float64(liveStores())
	})
}

func liveStores() int64 {
	return int64(storesCreated.Get()) - int64(storesReleased.Get())
}

// Stats is a snapshot of the package wide store statistics.
type Stats struct {
	StoresCreated    uint64
	StoresReleased   uint64
	StoresLive       int64
	Reallocations    uint64
	IllegalMutations uint64
}

// GetStats returns a snapshot of the package wide store statistics.
// Stores that were never released, but are unreachable, count as live.
func GetStats() Stats {
	return Stats{
		StoresCreated:    storesCreated.Get(),
		StoresReleased:   storesReleased.Get(),
		StoresLive:       liveStores(),
		Reallocations:    reallocations.Get(),
		IllegalMutations: illegalMutations.Get(),
	}
}

// WritePrometheus writes the store statistics in the prometheus format to the
// given writer.
func WritePrometheus(w io.Writer) {
	metricSet.WritePrometheus(w)
}
