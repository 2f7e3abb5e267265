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
	"context"
	"errors"
	"regexp"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/minakt/errors"
	"github.com/tochemey/minakt/internal/eventstream"
	"github.com/tochemey/minakt/internal/metric"
	"github.com/tochemey/minakt/internal/registry"
	"github.com/tochemey/minakt/internal/workerpool"
	"github.com/tochemey/minakt/log"
)

var systemNamePattern = regexp.MustCompile("^[a-zA-Z0-9][a-zA-Z0-9-_]*$")

// ActorSystem hosts actors: it schedules them on a fixed pool of workers,
// resolves names and drives their shutdown.
type ActorSystem interface {
	// Name returns the actor system name
	Name() string
	// Start starts the worker pool and the message scheduler
	Start(ctx context.Context) error
	// Stop drains every live actor within the shutdown timeout, then
	// releases the workers and the message scheduler.
	Stop(ctx context.Context) error
	// Running reports whether the system accepts messages
	Running() bool
	// Logger returns the system logger
	Logger() log.Logger
	// CallTimeout returns the default request/reply timeout
	CallTimeout() time.Duration
	// NumActors returns the number of live actors
	NumActors() int
	// Names returns the names currently registered
	Names() []string
	// Uptime returns the number of seconds since the system started
	Uptime() int64
	// Metric returns a snapshot of the system counters
	Metric(ctx context.Context) *Metric
	// Subscribe creates a subscriber to the lifecycle events and dead letters
	Subscribe() (eventstream.Subscriber, error)
	// Unsubscribe removes a subscriber created by Subscribe
	Unsubscribe(subscriber eventstream.Subscriber) error
	// CancelSchedule cancels a message scheduled with ScheduleOnce or Schedule
	CancelSchedule(reference string) error

	internal() *actorSystem
}

// actorSystem is the default implementation of ActorSystem
type actorSystem struct {
	name   string
	logger log.Logger

	workers             int
	throughput          int
	callTimeout         time.Duration
	shutdownTimeout     time.Duration
	actorInitTimeout    time.Duration
	actorInitMaxRetries int
	meterProvider       otelmetric.MeterProvider
	metricsEnabled      bool

	// mu serializes Start and Stop
	mu                 sync.Mutex
	pool               *workerpool.WorkerPool
	scheduler          *scheduler
	registry           *registry.Registry[process]
	actors             mapset.Set[process]
	eventsStream       eventstream.Stream
	callDuration       otelmetric.Float64Histogram
	metricRegistration otelmetric.Registration

	started   *atomic.Bool
	stopping  *atomic.Bool
	startedAt *atomic.Time

	// spawnMu orders the stopping flag against spawns in flight
	spawnMu sync.RWMutex
	spawns  sync.WaitGroup

	processedCount   *atomic.Int64
	failuresCount    *atomic.Int64
	deadlettersCount *atomic.Int64
	panicsCount      *atomic.Int64
}

// enforce compilation error
var _ ActorSystem = (*actorSystem)(nil)

// NewActorSystem creates an instance of ActorSystem
func NewActorSystem(name string, opts ...Option) (ActorSystem, error) {
	if name == "" {
		return nil, gerrors.ErrNameRequired
	}

	if !systemNamePattern.MatchString(name) {
		return nil, gerrors.ErrInvalidActorSystemName
	}

	system := &actorSystem{
		name:                name,
		logger:              log.DefaultLogger,
		workers:             DefaultWorkers,
		throughput:          DefaultThroughput,
		callTimeout:         DefaultCallTimeout,
		shutdownTimeout:     DefaultShutdownTimeout,
		actorInitTimeout:    DefaultInitTimeout,
		actorInitMaxRetries: DefaultInitMaxRetries,
		registry:            registry.New[process](0),
		actors:              mapset.NewSet[process](),
		eventsStream:        eventstream.New(),
		callDuration:        noop.Float64Histogram{},
		started:             atomic.NewBool(false),
		stopping:            atomic.NewBool(false),
		startedAt:           atomic.NewTime(time.Time{}),
		processedCount:      atomic.NewInt64(0),
		failuresCount:       atomic.NewInt64(0),
		deadlettersCount:    atomic.NewInt64(0),
		panicsCount:         atomic.NewInt64(0),
	}

	for _, opt := range opts {
		opt.Apply(system)
	}

	return system, nil
}

// Name returns the actor system name
func (x *actorSystem) Name() string {
	return x.name
}

// Logger returns the system logger
func (x *actorSystem) Logger() log.Logger {
	return x.logger
}

// CallTimeout returns the default request/reply timeout
func (x *actorSystem) CallTimeout() time.Duration {
	return x.callTimeout
}

// Running reports whether the system accepts messages
func (x *actorSystem) Running() bool {
	return x.started.Load()
}

// NumActors returns the number of live actors
func (x *actorSystem) NumActors() int {
	return x.actors.Cardinality()
}

// Names returns the names currently registered
func (x *actorSystem) Names() []string {
	return x.registry.Names()
}

// Uptime returns the number of seconds since the system started
func (x *actorSystem) Uptime() int64 {
	if !x.started.Load() {
		return 0
	}
	return int64(time.Since(x.startedAt.Load()).Seconds())
}

// Start starts the worker pool and the message scheduler
func (x *actorSystem) Start(ctx context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.started.Load() {
		return nil
	}

	x.logger.Infof("%s actor system starting with %d workers...", x.name, x.workers)

	sched, err := newScheduler(x.logger, x.shutdownTimeout)
	if err != nil {
		return err
	}

	if err := x.registerMetrics(); err != nil {
		return err
	}

	x.pool = workerpool.New(workerpool.WithWorkers(x.workers))
	x.pool.Start()
	x.scheduler = sched
	x.scheduler.Start(ctx)

	x.startedAt.Store(time.Now())
	x.started.Store(true)
	x.logger.Infof("%s actor system successfully started.", x.name)
	return nil
}

// Stop drains every live actor within the shutdown timeout, then releases the
// workers, the message scheduler and the events stream.
func (x *actorSystem) Stop(ctx context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return gerrors.ErrActorSystemNotStarted
	}

	x.logger.Infof("%s actor system is shutting down...", x.name)
	x.spawnMu.Lock()
	x.stopping.Store(true)
	x.spawnMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, x.shutdownTimeout)
	defer cancel()

	var err error
	if werr := x.awaitSpawns(ctx); werr != nil {
		err = multierr.Append(err, werr)
	}

	if derr := x.drainActors(ctx); derr != nil {
		err = multierr.Append(err, derr)
	}

	x.scheduler.Stop(ctx)
	x.pool.Stop()

	// no worker runs anymore: actors whose turn was still queued end here
	for _, p := range x.actors.ToSlice() {
		p.forceTerminate()
	}

	if x.metricRegistration != nil {
		err = multierr.Append(err, x.metricRegistration.Unregister())
		x.metricRegistration = nil
	}

	x.eventsStream.Close()
	x.registry.Reset()
	x.actors.Clear()

	x.started.Store(false)
	x.stopping.Store(false)

	x.logger.Infof("%s actor system shutdown completed.", x.name)
	return multierr.Append(err, x.logger.Flush())
}

// Metric returns a snapshot of the system counters
func (x *actorSystem) Metric(context.Context) *Metric {
	var busyWorkers, pendingActors int64
	if pool := x.pool; pool != nil {
		busyWorkers = pool.Busy()
		pendingActors = pool.Pending()
	}

	return &Metric{
		busyWorkers:      busyWorkers,
		pendingActors:    pendingActors,
		actorsCount:      int64(x.actors.Cardinality()),
		processedCount:   x.processedCount.Load(),
		failuresCount:    x.failuresCount.Load(),
		deadlettersCount: x.deadlettersCount.Load(),
		panicsCount:      x.panicsCount.Load(),
		uptime:           x.Uptime(),
	}
}

// Subscribe creates a subscriber to the lifecycle events and dead letters
func (x *actorSystem) Subscribe() (eventstream.Subscriber, error) {
	if !x.started.Load() {
		return nil, gerrors.ErrActorSystemNotStarted
	}
	subscriber := x.eventsStream.AddSubscriber()
	x.eventsStream.Subscribe(subscriber, eventsTopic)
	return subscriber, nil
}

// Unsubscribe removes a subscriber created by Subscribe
func (x *actorSystem) Unsubscribe(subscriber eventstream.Subscriber) error {
	if !x.started.Load() {
		return gerrors.ErrActorSystemNotStarted
	}
	x.eventsStream.Unsubscribe(subscriber, eventsTopic)
	x.eventsStream.RemoveSubscriber(subscriber)
	return nil
}

// CancelSchedule cancels a message scheduled with ScheduleOnce or Schedule
func (x *actorSystem) CancelSchedule(reference string) error {
	if !x.started.Load() {
		return gerrors.ErrActorSystemNotStarted
	}
	return x.scheduler.cancel(reference)
}

func (x *actorSystem) internal() *actorSystem {
	return x
}

func (x *actorSystem) acceptsSpawns() bool {
	return x.started.Load() && !x.stopping.Load()
}

// beginSpawn records a spawn in flight. Stop waits for it before draining.
func (x *actorSystem) beginSpawn() bool {
	x.spawnMu.RLock()
	defer x.spawnMu.RUnlock()
	if !x.acceptsSpawns() {
		return false
	}
	x.spawns.Add(1)
	return true
}

func (x *actorSystem) endSpawn() {
	x.spawns.Done()
}

// awaitSpawns waits for the spawns begun before Stop
func (x *actorSystem) awaitSpawns(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		x.spawns.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(gerrors.ErrShutdownTimeout, ctx.Err())
	}
}

// drainActors drains all live actors concurrently. Actors that could not
// drain before ctx is done are stopped without waiting.
func (x *actorSystem) drainActors(ctx context.Context) error {
	var eg errgroup.Group
	for _, p := range x.actors.ToSlice() {
		eg.Go(func() error {
			return p.Drain(ctx)
		})
	}

	if err := eg.Wait(); err != nil {
		for _, p := range x.actors.ToSlice() {
			x.logger.Warnf("Actor %s did not drain in time, stopping it", p.String())
			p.requestStop()
		}
		return errors.Join(gerrors.ErrShutdownTimeout, err)
	}
	return nil
}

// claim registers name for p. It waits for a terminating holder to release the name.
func (x *actorSystem) claim(ctx context.Context, name string, p process) error {
	for {
		existing, ok := x.registry.Register(name, p)
		if ok {
			return nil
		}

		if existing.IsRunning() {
			return gerrors.NewErrActorAlreadyExists(name)
		}

		select {
		case <-existing.Terminated():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (x *actorSystem) onStarted(p process) {
	x.actors.Add(p)
	x.logger.Debugf("Actor %s started", p.String())
	x.eventsStream.Publish(eventsTopic, &ActorStarted{
		ID:        p.ID(),
		Name:      p.Name(),
		StartedAt: time.Now().UTC(),
	})
}

func (x *actorSystem) removeProcess(p process) {
	if name := p.Name(); name != "" {
		x.registry.Unregister(name, p)
	}
	x.actors.Remove(p)
}

func (x *actorSystem) deadletter(p process, message any) {
	x.deadlettersCount.Inc()
	x.logger.Warnf("Actor %s dropped %T to deadletters", p.String(), message)
	x.eventsStream.Publish(eventsTopic, &Deadletter{
		ID:        p.ID(),
		Name:      p.Name(),
		Message:   message,
		DroppedAt: time.Now().UTC(),
	})
}

func (x *actorSystem) terminated(p process, cause error) {
	if cause != nil {
		x.panicsCount.Inc()
		x.eventsStream.Publish(eventsTopic, &ActorPanicked{
			ID:         p.ID(),
			Name:       p.Name(),
			Reason:     cause,
			PanickedAt: time.Now().UTC(),
		})
		return
	}

	x.logger.Debugf("Actor %s stopped", p.String())
	x.eventsStream.Publish(eventsTopic, &ActorStopped{
		ID:        p.ID(),
		Name:      p.Name(),
		StoppedAt: time.Now().UTC(),
	})
}

func (x *actorSystem) recordCall(ctx context.Context, took time.Duration) {
	x.callDuration.Record(ctx, float64(took.Microseconds())/1000,
		otelmetric.WithAttributes(attribute.String("actor.system", x.name)))
}

// registerMetrics exports the system counters when metrics are enabled
func (x *actorSystem) registerMetrics() error {
	if !x.metricsEnabled {
		return nil
	}

	provider := metric.NewProvider()
	if x.meterProvider != nil {
		provider = metric.NewProviderWith(x.meterProvider)
	}

	meter := provider.Meter()
	instruments, err := metric.NewRuntimeMetric(meter)
	if err != nil {
		return err
	}

	observeOptions := []otelmetric.ObserveOption{
		otelmetric.WithAttributes(attribute.String("actor.system", x.name)),
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, observer otelmetric.Observer) error {
		observer.ObserveInt64(instruments.ActorsCount(), int64(x.actors.Cardinality()), observeOptions...)
		observer.ObserveInt64(instruments.ProcessedCount(), x.processedCount.Load(), observeOptions...)
		observer.ObserveInt64(instruments.DeadlettersCount(), x.deadlettersCount.Load(), observeOptions...)
		observer.ObserveInt64(instruments.PanicsCount(), x.panicsCount.Load(), observeOptions...)
		observer.ObserveInt64(instruments.Uptime(), x.Uptime(), observeOptions...)
		return nil
	}, instruments.Observables()...)
	if err != nil {
		return err
	}

	x.callDuration = instruments.CallDuration()
	x.metricRegistration = registration
	return nil
}
