package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resource metrics
var (
	RangeReadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mxf_reader_range_reads_total",
			Help: "Total number of byte-range read requests",
		},
		[]string{"backend", "status"},
	)

	RangeReadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mxf_reader_range_read_duration_seconds",
			Help:    "Byte-range read duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	RangeReadBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mxf_reader_range_read_bytes",
			Help:    "Size in bytes of materialized byte-range reads",
			Buckets: prometheus.ExponentialBuckets(64, 4, 12),
		},
		[]string{"backend"},
	)

	RemoteRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mxf_reader_remote_retries_total",
			Help: "Total number of retried remote range requests",
		},
	)

	FileRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mxf_reader_file_retries_total",
			Help: "Total number of retried local file operations (stale NFS handles)",
		},
		[]string{"operation"},
	)
)

// Decoder metrics
var (
	DecodeSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mxf_reader_decode_sessions_total",
			Help: "Total number of header metadata decode sessions",
		},
		[]string{"status"}, // "success", "aborted"
	)

	MetadataSetsDecoded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mxf_reader_metadata_sets_decoded_total",
			Help: "Total number of structural metadata sets decoded",
		},
	)

	StructuralErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mxf_reader_structural_errors_total",
			Help: "Total number of structural metadata diagnostics recorded",
		},
		[]string{"severity"}, // "non-fatal", "fatal"
	)
)
