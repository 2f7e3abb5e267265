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

// Package ledger keeps the balance of bank accounts, one actor per account.
//
// Account actors are registered under "ledger.account/<account number>" and
// spawned lazily by the first event applied to the account.
package ledger

import (
	"context"
	"fmt"

	"github.com/tochemey/minakt/actor"
	gerrors "github.com/tochemey/minakt/errors"
)

// Payload is the body of an account event
type Payload interface {
	isPayload()
}

// AmountDeposited credits the account
type AmountDeposited struct{ Value int64 }

// AmountWithdrawn debits the account
type AmountWithdrawn struct{ Value int64 }

// FeeApplied debits the account with a fee
type FeeApplied struct{ Value int64 }

func (AmountDeposited) isPayload() {}
func (AmountWithdrawn) isPayload() {}
func (FeeApplied) isPayload()      {}

// Message is handled by an account actor
type Message interface {
	isMessage()
}

// ApplyEvent applies Payload to the account AccountNumber
type ApplyEvent struct {
	AccountNumber string
	Payload       Payload
}

// GetBalance asks an account for its balance
type GetBalance struct {
	Port *actor.ReplyPort[int64]
}

func (ApplyEvent) isMessage() {}
func (GetBalance) isMessage() {}

// Args are the spawn arguments of an account
type Args struct {
	AccountNumber  string
	InitialBalance int64
}

// State is the account state
type State struct {
	AccountNumber string
	Balance       int64
}

// Apply applies payload to the balance
func (s *State) Apply(payload Payload) error {
	switch p := payload.(type) {
	case AmountDeposited:
		s.Balance += p.Value
	case AmountWithdrawn:
		s.Balance -= p.Value
	case FeeApplied:
		s.Balance -= p.Value
	default:
		return fmt.Errorf("payload %T: %w", payload, gerrors.ErrUnhandled)
	}
	return nil
}

// Account is the actor holding the balance of one account
type Account struct{}

var _ actor.Actor[Message, Args, *State] = (*Account)(nil)

// PreStart opens the account with its initial balance
func (a *Account) PreStart(ctx *actor.Context, args Args) (*State, error) {
	ctx.Logger().Infof("account %s initial balance: %d", args.AccountNumber, args.InitialBalance)
	return &State{AccountNumber: args.AccountNumber, Balance: args.InitialBalance}, nil
}

// Receive handles a Message
func (a *Account) Receive(ctx *actor.ReceiveContext[Message], state *State) error {
	switch msg := ctx.Message().(type) {
	case ApplyEvent:
		if msg.AccountNumber != state.AccountNumber {
			return fmt.Errorf("event for account %s sent to account %s: %w",
				msg.AccountNumber, state.AccountNumber, gerrors.ErrInvalidMessage)
		}
		if err := state.Apply(msg.Payload); err != nil {
			return err
		}
		ctx.Logger().Debugf("event: %#v, balance after: %d", msg.Payload, state.Balance)
	case GetBalance:
		ctx.Logger().Infof("account %s sending balance: %d", state.AccountNumber, state.Balance)
		actor.Reply(ctx, msg.Port, state.Balance)
	default:
		return gerrors.ErrUnhandled
	}
	return nil
}

// PostStop does nothing
func (a *Account) PostStop(*actor.Context, *State) error {
	return nil
}

// AccountName returns the registry name of an account
func AccountName(accountNumber string) string {
	return actor.Name(new(Account), accountNumber)
}

// Ledger routes events and queries to the account actors of a system
type Ledger struct {
	system actor.ActorSystem
}

// New creates a Ledger on top of system
func New(system actor.ActorSystem) *Ledger {
	return &Ledger{system: system}
}

// ApplyEvent sends event to its account, opening the account with a zero
// balance when it does not exist yet.
func (l *Ledger) ApplyEvent(ctx context.Context, event ApplyEvent) error {
	if event.AccountNumber == "" {
		return gerrors.ErrNameRequired
	}

	pid, err := actor.LookupOrSpawn(ctx, l.system, AccountName(event.AccountNumber), new(Account), Args{
		AccountNumber: event.AccountNumber,
	})
	if err != nil {
		return err
	}
	return actor.Tell[Message](ctx, pid, event)
}

// GetBalance returns the balance of an account. found is false when the
// account does not exist.
func (l *Ledger) GetBalance(ctx context.Context, accountNumber string) (balance int64, found bool, err error) {
	pid, ok := actor.WhereIs[Message](l.system, AccountName(accountNumber))
	if !ok {
		return 0, false, nil
	}

	balance, err = actor.Call(ctx, pid, func(port *actor.ReplyPort[int64]) Message {
		return GetBalance{Port: port}
	}, l.system.CallTimeout())
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}
