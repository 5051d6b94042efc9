// Package tlbmetrics exposes a small fixed set of Prometheus counters for
// the traffic this module pushes through it: bits packed and unpacked,
// and cells (de)serialized through a BagOfCells. It intentionally does
// not register a default registry or start an HTTP server — callers
// embedding this module into a service wire Collect() into whatever
// registry and exporter they already run.
package tlbmetrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// BitsPacked counts bits written via codec.WriteUint, the chokepoint
	// nearly all fixed-width Pack traffic routes through.
	BitsPacked = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tlb",
		Name:      "bits_packed_total",
		Help:      "Total number of bits packed.",
	})

	// BitsUnpacked is BitsPacked's decode-side counterpart, incremented by
	// codec.ReadUint.
	BitsUnpacked = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tlb",
		Name:      "bits_unpacked_total",
		Help:      "Total number of bits unpacked.",
	})

	// CellsSerialized counts cells written into a BagOfCells by
	// (*boc.BagOfCells).Serialize.
	CellsSerialized = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tlb",
		Name:      "cells_serialized_total",
		Help:      "Total number of cells serialized into a BagOfCells.",
	})

	// CellsDeserialized is CellsSerialized's decode-side counterpart.
	CellsDeserialized = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tlb",
		Name:      "cells_deserialized_total",
		Help:      "Total number of cells deserialized from a BagOfCells.",
	})
)

// Collect registers every counter in this package with r. Call it once,
// at process startup, against whatever *prometheus.Registry the embedding
// service already exposes.
func Collect(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{BitsPacked, BitsUnpacked, CellsSerialized, CellsDeserialized} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}
