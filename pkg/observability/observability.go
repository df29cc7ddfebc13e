// Package observability provides structured logging and OpenTelemetry
// metric instruments for engine events. Only the metric API is used here;
// provider and exporter wiring belongs to the host application, so with no
// provider installed every instrument is a no-op.
package observability

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/covenantos/trustcore"

var (
	loggerMu sync.RWMutex
	logger   = slog.Default()

	metricsOnce sync.Once
	instruments struct {
		receiptsVerified metric.Int64Counter
		trustAllocated   metric.Float64Counter
		trustSlashed     metric.Float64Counter
		burnsComputed    metric.Float64Counter
		aggregations     metric.Int64Counter
	}
)

// Logger returns the engine logger.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger replaces the engine logger.
func SetLogger(l *slog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func ensureInstruments() {
	metricsOnce.Do(func() {
		meter := otel.Meter(instrumentationName)
		instruments.receiptsVerified, _ = meter.Int64Counter("trustcore.receipts.verified",
			metric.WithDescription("Receipt verifications performed"))
		instruments.trustAllocated, _ = meter.Float64Counter("trustcore.pool.trust_allocated",
			metric.WithDescription("Trust allocated from the collateral pool"))
		instruments.trustSlashed, _ = meter.Float64Counter("trustcore.pool.trust_slashed",
			metric.WithDescription("Trust slashed from the collateral pool"))
		instruments.burnsComputed, _ = meter.Float64Counter("trustcore.burner.burn_amount",
			metric.WithDescription("Graduated burn amounts computed"))
		instruments.aggregations, _ = meter.Int64Counter("trustcore.aggregator.runs",
			metric.WithDescription("BFT reputation aggregations performed"))
	})
}

// RecordReceiptVerified counts one receipt verification.
func RecordReceiptVerified(valid bool) {
	ensureInstruments()
	if instruments.receiptsVerified != nil {
		instruments.receiptsVerified.Add(context.Background(), 1,
			metric.WithAttributes(attribute.Bool("valid", valid)))
	}
}

// RecordTrustAllocated counts pool trust allocation.
func RecordTrustAllocated(amount float64) {
	ensureInstruments()
	if instruments.trustAllocated != nil {
		instruments.trustAllocated.Add(context.Background(), amount)
	}
}

// RecordTrustSlashed counts pool trust slashing.
func RecordTrustSlashed(amount float64) {
	ensureInstruments()
	if instruments.trustSlashed != nil {
		instruments.trustSlashed.Add(context.Background(), amount)
	}
}

// RecordBurn counts a computed burn amount.
func RecordBurn(amount float64) {
	ensureInstruments()
	if instruments.burnsComputed != nil {
		instruments.burnsComputed.Add(context.Background(), amount)
	}
}

// RecordAggregation counts one aggregator run.
func RecordAggregation() {
	ensureInstruments()
	if instruments.aggregations != nil {
		instruments.aggregations.Add(context.Background(), 1)
	}
}
