package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const meterName = "storevista-be/orders"

const (
	checkoutsMetric = "orders.checkouts"
	lookupsMetric   = "orders.lookups"
	durationMetric  = "orders.checkout.duration"
)

var outcomeKey = attribute.Key("outcome")

const (
	outcomePlaced   = "placed"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
	outcomeFound    = "found"
	outcomeMissed   = "missed"
)

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// OrderStats records checkout and lookup outcomes on an OpenTelemetry meter.
// A manual reader keeps the aggregates in process for the health endpoint.
type OrderStats struct {
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider

	checkouts metric.Int64Counter
	lookups   metric.Int64Counter
	duration  metric.Float64Histogram
}

func NewOrderStats() *OrderStats {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter(meterName)

	checkouts, err := meter.Int64Counter(checkoutsMetric,
		metric.WithDescription("Checkouts by outcome"),
		metric.WithUnit("{order}"),
	)
	otel.Handle(err)

	lookups, err := meter.Int64Counter(lookupsMetric,
		metric.WithDescription("Order reference lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	otel.Handle(err)

	duration, err := meter.Float64Histogram(durationMetric,
		metric.WithDescription("Time spent placing successful orders"),
		metric.WithUnit("ms"),
	)
	otel.Handle(err)

	return &OrderStats{
		reader:    reader,
		provider:  provider,
		checkouts: checkouts,
		lookups:   lookups,
		duration:  duration,
	}
}

func withOutcome(outcome string) metric.AddOption {
	return metric.WithAttributes(outcomeKey.String(outcome))
}

func (s *OrderStats) ObservePlacement(ctx context.Context, d time.Duration) {
	s.checkouts.Add(ctx, 1, withOutcome(outcomePlaced))
	s.duration.Record(ctx, float64(d.Microseconds())/1000)
}

func (s *OrderStats) Rejected(ctx context.Context) {
	s.checkouts.Add(ctx, 1, withOutcome(outcomeRejected))
}

func (s *OrderStats) Failed(ctx context.Context) {
	s.checkouts.Add(ctx, 1, withOutcome(outcomeFailed))
}

func (s *OrderStats) Lookup(ctx context.Context, found bool) {
	outcome := outcomeMissed
	if found {
		outcome = outcomeFound
	}
	s.lookups.Add(ctx, 1, withOutcome(outcome))
}

// Shutdown stops the meter provider. Later recordings are dropped.
func (s *OrderStats) Shutdown(ctx context.Context) error {
	return s.provider.Shutdown(ctx)
}

type OrderSnapshot struct {
	Placed         uint64  `json:"orders_placed"`
	Rejected       uint64  `json:"orders_rejected"`
	Failed         uint64  `json:"orders_failed"`
	LookupHits     uint64  `json:"lookups_found"`
	LookupMisses   uint64  `json:"lookups_missed"`
	AvgPlaceMillis float64 `json:"avg_checkout_ms"`
}

// Snapshot collects the cumulative aggregates from the manual reader.
func (s *OrderStats) Snapshot(ctx context.Context) (OrderSnapshot, error) {
	var rm metricdata.ResourceMetrics
	if err := s.reader.Collect(ctx, &rm); err != nil {
		return OrderSnapshot{}, err
	}

	var snap OrderSnapshot
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					outcome, _ := dp.Attributes.Value(outcomeKey)
					snap.add(outcome.AsString(), uint64(dp.Value))
				}
			case metricdata.Histogram[float64]:
				var count uint64
				var sum float64
				for _, dp := range data.DataPoints {
					count += dp.Count
					sum += dp.Sum
				}
				if count > 0 {
					snap.AvgPlaceMillis = sum / float64(count)
				}
			}
		}
	}
	return snap, nil
}

func (s *OrderSnapshot) add(outcome string, n uint64) {
	switch outcome {
	case outcomePlaced:
		s.Placed += n
	case outcomeRejected:
		s.Rejected += n
	case outcomeFailed:
		s.Failed += n
	case outcomeFound:
		s.LookupHits += n
	case outcomeMissed:
		s.LookupMisses += n
	}
}
