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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/minakt/errors"
	"github.com/tochemey/minakt/log"
)

// scheduler delivers messages to actors in the future.
type scheduler struct {
	// helps lock concurrent access
	mu sync.Mutex
	// underlying Scheduler
	quartzScheduler quartz.Scheduler
	// states whether the quartzScheduler has started or not
	started *atomic.Bool
	logger  log.Logger
	// bounds the wait for running jobs on Stop
	stopTimeout time.Duration
}

func newScheduler(logger log.Logger, stopTimeout time.Duration) (*scheduler, error) {
	// create an instance of quartz scheduler with logger off
	quartzScheduler, err := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))
	if err != nil {
		return nil, err
	}

	return &scheduler{
		started:         atomic.NewBool(false),
		quartzScheduler: quartzScheduler,
		logger:          logger,
		stopTimeout:     stopTimeout,
	}, nil
}

// Start starts the scheduler
func (x *scheduler) Start(ctx context.Context) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.logger.Debug("starting messages scheduler...")
	x.quartzScheduler.Start(context.WithoutCancel(ctx))
	x.started.Store(x.quartzScheduler.IsStarted())
	x.logger.Debug("messages scheduler started.")
}

// Stop drops every pending job and waits for running ones
func (x *scheduler) Stop(ctx context.Context) {
	if !x.started.Load() {
		return
	}

	x.logger.Debug("stopping messages scheduler...")
	x.mu.Lock()
	defer x.mu.Unlock()
	_ = x.quartzScheduler.Clear()
	x.quartzScheduler.Stop()
	x.started.Store(x.quartzScheduler.IsStarted())

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), x.stopTimeout)
	defer cancel()
	x.quartzScheduler.Wait(ctx)
	x.logger.Debug("messages scheduler stopped.")
}

func (x *scheduler) schedule(send func(ctx context.Context) error, trigger quartz.Trigger) (string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return "", gerrors.ErrSchedulerNotStarted
	}

	fn := job.NewFunctionJob[bool](
		func(ctx context.Context) (bool, error) {
			err := send(ctx)
			if err != nil {
				x.logger.Warnf("scheduled message delivery failed: %v", err)
			}
			return err == nil, err
		},
	)

	reference := uuid.NewString()
	detail := quartz.NewJobDetail(fn, quartz.NewJobKey(reference))
	if err := x.quartzScheduler.ScheduleJob(detail, trigger); err != nil {
		return "", err
	}
	return reference, nil
}

func (x *scheduler) cancel(reference string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return gerrors.ErrSchedulerNotStarted
	}

	if err := x.quartzScheduler.DeleteJob(quartz.NewJobKey(reference)); err != nil {
		return errors.Join(gerrors.ErrScheduledMessageNotFound, err)
	}
	return nil
}

// ScheduleOnce delivers message to the actor once after delay.
// It returns a reference that CancelSchedule accepts.
func ScheduleOnce[M any](ctx context.Context, to *PID[M], message M, delay time.Duration) (string, error) {
	if to == nil {
		return "", gerrors.ErrDead
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return to.system.scheduler.schedule(func(ctx context.Context) error {
		return Tell(ctx, to, message)
	}, quartz.NewRunOnceTrigger(delay))
}

// Schedule delivers message to the actor every interval until the schedule
// is canceled or the system stops.
// It returns a reference that CancelSchedule accepts.
func Schedule[M any](ctx context.Context, to *PID[M], message M, interval time.Duration) (string, error) {
	if to == nil {
		return "", gerrors.ErrDead
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return to.system.scheduler.schedule(func(ctx context.Context) error {
		return Tell(ctx, to, message)
	}, quartz.NewSimpleTrigger(interval))
}
