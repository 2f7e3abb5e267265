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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidActorSystemName is returned when the actor system name contains invalid characters.
	// A valid name must consist of only alphanumeric characters ([a-zA-Z0-9]), with optional
	// hyphens or underscores that are not leading.
	ErrInvalidActorSystemName = errors.New("invalid ActorSystem name, must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-' or '_')")

	// ErrNameRequired is returned when a name is required but not provided.
	ErrNameRequired = errors.New("name is required")

	// ErrDead indicates that the actor is no longer alive or has been terminated.
	ErrDead = errors.New("actor is not alive")

	// ErrActorAlreadyExists is returned when a name is already held by a live actor.
	ErrActorAlreadyExists = errors.New("actor already exists")

	// ErrRequestTimeout indicates that a Call timed out while waiting for a reply.
	ErrRequestTimeout = errors.New("request timed out")

	// ErrInvalidTimeout is returned when a Call is given a non-positive timeout.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrReplyAlreadySent is returned when a reply port is written more than once.
	ErrReplyAlreadySent = errors.New("reply already sent")

	// ErrActorSystemNotStarted is returned when the actor system is not running.
	ErrActorSystemNotStarted = errors.New("actor system has not started yet")

	// ErrInitFailure is returned when an actor fails to initialize.
	ErrInitFailure = errors.New("failed to initialize")

	// ErrMailboxDisposed is returned when a message is pushed into a disposed mailbox.
	ErrMailboxDisposed = errors.New("mailbox is disposed")

	// ErrSchedulerNotStarted is returned when the message scheduler is not running.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrScheduledMessageNotFound is returned when canceling an unknown schedule.
	ErrScheduledMessageNotFound = errors.New("scheduled message not found")

	// ErrUnhandled is returned by an actor for a message it does not handle.
	ErrUnhandled = errors.New("unhandled message")

	// ErrInvalidMessage is returned when a nil message is sent.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrShutdownTimeout is returned when the system could not drain its actors in time.
	ErrShutdownTimeout = errors.New("shutdown timed out")
)

// NewErrActorAlreadyExists formats an ErrActorAlreadyExists with the given name.
func NewErrActorAlreadyExists(name string) error {
	return fmt.Errorf("actor=(%s) %w", name, ErrActorAlreadyExists)
}

// NewErrInitFailure wraps the actor's initialization error.
func NewErrInitFailure(err error) error {
	return errors.Join(ErrInitFailure, err)
}

// NewErrDead formats an ErrDead with the given actor identifier.
func NewErrDead(actor string) error {
	return fmt.Errorf("actor=(%s) %w", actor, ErrDead)
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}
