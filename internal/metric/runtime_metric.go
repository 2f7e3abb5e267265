// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package metric

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// RuntimeMetric groups the OpenTelemetry instruments describing the actor runtime.
//
// Instruments:
//   - minakt.actors.count        (Int64ObservableGauge)
//   - minakt.processed.count     (Int64ObservableCounter)
//   - minakt.deadletters.count   (Int64ObservableCounter)
//   - minakt.panics.count        (Int64ObservableCounter)
//   - minakt.uptime              (Int64ObservableCounter, unit: seconds)
//   - minakt.call.duration       (Float64Histogram, unit: milliseconds)
type RuntimeMetric struct {
	actorsCount      metric.Int64ObservableGauge
	processedCount   metric.Int64ObservableCounter
	deadlettersCount metric.Int64ObservableCounter
	panicsCount      metric.Int64ObservableCounter
	uptime           metric.Int64ObservableCounter
	callDuration     metric.Float64Histogram
}

// NewRuntimeMetric creates the runtime instruments using the provided Meter.
// It returns an error if any instrument cannot be created.
func NewRuntimeMetric(meter metric.Meter) (*RuntimeMetric, error) {
	var (
		instruments RuntimeMetric
		err         error
	)

	if instruments.actorsCount, err = meter.Int64ObservableGauge(
		"minakt.actors.count",
		metric.WithDescription("Number of live actors"),
	); err != nil {
		return nil, fmt.Errorf("failed to create actors count instrument, %w", err)
	}

	if instruments.processedCount, err = meter.Int64ObservableCounter(
		"minakt.processed.count",
		metric.WithDescription("Total number of messages processed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processed count instrument, %w", err)
	}

	if instruments.deadlettersCount, err = meter.Int64ObservableCounter(
		"minakt.deadletters.count",
		metric.WithDescription("Total number of messages dropped to deadletters"),
	); err != nil {
		return nil, fmt.Errorf("failed to create deadletters count instrument, %w", err)
	}

	if instruments.panicsCount, err = meter.Int64ObservableCounter(
		"minakt.panics.count",
		metric.WithDescription("Total number of actors terminated by a panic"),
	); err != nil {
		return nil, fmt.Errorf("failed to create panics count instrument, %w", err)
	}

	if instruments.uptime, err = meter.Int64ObservableCounter(
		"minakt.uptime",
		metric.WithDescription("Uptime of the actor system in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create uptime instrument, %w", err)
	}

	if instruments.callDuration, err = meter.Float64Histogram(
		"minakt.call.duration",
		metric.WithDescription("Latency of request/reply calls"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create call duration instrument, %w", err)
	}

	return &instruments, nil
}

// ActorsCount returns the gauge reporting live actors
func (x *RuntimeMetric) ActorsCount() metric.Int64ObservableGauge {
	return x.actorsCount
}

// ProcessedCount returns the counter of processed messages
func (x *RuntimeMetric) ProcessedCount() metric.Int64ObservableCounter {
	return x.processedCount
}

// DeadlettersCount returns the counter of dead letters
func (x *RuntimeMetric) DeadlettersCount() metric.Int64ObservableCounter {
	return x.deadlettersCount
}

// PanicsCount returns the counter of panicking actors
func (x *RuntimeMetric) PanicsCount() metric.Int64ObservableCounter {
	return x.panicsCount
}

// Uptime returns the uptime counter
func (x *RuntimeMetric) Uptime() metric.Int64ObservableCounter {
	return x.uptime
}

// CallDuration returns the call latency histogram
func (x *RuntimeMetric) CallDuration() metric.Float64Histogram {
	return x.callDuration
}

// Observables returns the asynchronous instruments to register a callback for
func (x *RuntimeMetric) Observables() []metric.Observable {
	return []metric.Observable{
		x.actorsCount,
		x.processedCount,
		x.deadlettersCount,
		x.panicsCount,
		x.uptime,
	}
}
