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

package actor

import (
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/minakt/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(sys *actorSystem)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*actorSystem)

// Apply applies the option
func (f OptionFunc) Apply(c *actorSystem) {
	f(c)
}

// WithLogger sets the actor system custom log
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(a *actorSystem) {
		if logger != nil {
			a.logger = logger
		}
	})
}

// WithWorkers sets the number of goroutines running actors
func WithWorkers(workers int) Option {
	return OptionFunc(func(a *actorSystem) {
		if workers > 0 {
			a.workers = workers
		}
	})
}

// WithThroughput sets how many messages an actor handles before its
// worker is handed to the next ready actor
func WithThroughput(throughput int) Option {
	return OptionFunc(func(a *actorSystem) {
		if throughput > 0 {
			a.throughput = throughput
		}
	})
}

// WithCallTimeout sets the default timeout used by request/reply helpers
func WithCallTimeout(timeout time.Duration) Option {
	return OptionFunc(func(a *actorSystem) {
		if timeout > 0 {
			a.callTimeout = timeout
		}
	})
}

// WithShutdownTimeout sets the time allowed to drain every actor on Stop
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(a *actorSystem) {
		if timeout > 0 {
			a.shutdownTimeout = timeout
		}
	})
}

// WithActorInitMaxRetries sets the number of times to retry an actor init process
func WithActorInitMaxRetries(value int) Option {
	return OptionFunc(func(a *actorSystem) {
		if value > 0 {
			a.actorInitMaxRetries = value
		}
	})
}

// WithActorInitTimeout sets how long in seconds an actor start process should take to complete
func WithActorInitTimeout(timeout time.Duration) Option {
	return OptionFunc(func(a *actorSystem) {
		if timeout > 0 {
			a.actorInitTimeout = timeout
		}
	})
}

// WithMetrics exports the runtime metrics through the global OpenTelemetry meter provider
func WithMetrics() Option {
	return OptionFunc(func(a *actorSystem) {
		a.metricsEnabled = true
	})
}

// WithMeterProvider exports the runtime metrics through the given OpenTelemetry meter provider
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(a *actorSystem) {
		a.meterProvider = provider
		a.metricsEnabled = provider != nil
	})
}
