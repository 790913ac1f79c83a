package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type (
	Registry      = prometheus.Registry
	Registerer    = prometheus.Registerer
	Gatherer      = prometheus.Gatherer
	Collector     = prometheus.Collector
	Counter       = prometheus.Counter
	CounterOpts   = prometheus.CounterOpts
	CounterVec    = prometheus.CounterVec
	Gauge         = prometheus.Gauge
	GaugeOpts     = prometheus.GaugeOpts
	HistogramOpts = prometheus.HistogramOpts
	HistogramVec  = prometheus.HistogramVec
	Labels        = prometheus.Labels

	RegisterGatherer interface {
		Registerer
		Gatherer
	}
)

const (
	Namespace = "railfence"

	OperationEncode = "encode"
	OperationDecode = "decode"

	ResultOk    = "ok"
	ResultError = "error"
)

var (
	NewCounter      = prometheus.NewCounter
	NewCounterVec   = prometheus.NewCounterVec
	NewGauge        = prometheus.NewGauge
	NewHistogramVec = prometheus.NewHistogramVec
	NewRegistry     = prometheus.NewRegistry

	Default = NewRegistry()

	CipherOperations = NewCounterVec(CounterOpts{
		Namespace: Namespace,
		Name:      "cipher_operations_total",
		Help:      "Number of cipher operations performed.",
	}, []string{"operation", "result"})
	CipherRunes = NewCounterVec(CounterOpts{
		Namespace: Namespace,
		Name:      "cipher_runes_total",
		Help:      "Number of characters passed through the cipher.",
	}, []string{"operation"})
)

func init() {
	Default.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		CipherOperations,
		CipherRunes,
	)
}

func MustRegister(cs ...Collector) { Default.MustRegister(cs...) }

// ObserveCipher accounts one encode or decode call over runes characters.
func ObserveCipher(operation string, runes int, err error) {
	result := ResultOk
	if err != nil {
		result = ResultError
	}
	CipherOperations.WithLabelValues(operation, result).Inc()
	if err == nil {
		CipherRunes.WithLabelValues(operation).Add(float64(runes))
	}
}
