// Package hub broadcasts published errors to registered observers.
//
// A Hub keeps two independent observer sets, synchronous and asynchronous.
// Membership changes are lock-free and may run concurrently with publishing;
// every publish call notifies the snapshot of members taken when it starts.
package hub

import (
	"context"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"errkit/pkg/errx"
)

// Observer is notified synchronously of every published error.
// Implementations must be comparable; pointer receivers are the usual choice.
// Registering a slice, map or func observer fails with errx.ErrValidation.
type Observer interface {
	OnError(e *errx.Error) error
}

// AsyncObserver is notified by PublishAsync.
type AsyncObserver interface {
	OnErrorAsync(ctx context.Context, e *errx.Error) error
}

type observerFunc struct {
	fn func(*errx.Error) error
}

func (o *observerFunc) OnError(e *errx.Error) error { return o.fn(e) }

// ObserverFunc adapts fn into an Observer. Every call returns a distinct
// observer, so keep the result to unregister it later.
func ObserverFunc(fn func(*errx.Error) error) Observer {
	return &observerFunc{fn: fn}
}

type asyncObserverFunc struct {
	fn func(context.Context, *errx.Error) error
}

func (o *asyncObserverFunc) OnErrorAsync(ctx context.Context, e *errx.Error) error {
	return o.fn(ctx, e)
}

// AsyncObserverFunc adapts fn into an AsyncObserver.
func AsyncObserverFunc(fn func(context.Context, *errx.Error) error) AsyncObserver {
	return &asyncObserverFunc{fn: fn}
}

// Hub is safe for concurrent use. The zero value is not usable; call New.
type Hub struct {
	observers      snapshotSet[Observer]
	asyncObservers snapshotSet[AsyncObserver]
	logger         *zap.Logger
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger logs membership changes at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New returns a Hub with no observers.
func New(opts ...Option) *Hub {
	h := &Hub{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterObserver adds obs. Registering a member again is a no-op.
func (h *Hub) RegisterObserver(obs Observer) error {
	if obs == nil {
		return errx.NewArgumentError("RegisterObserver", "observer", "must not be nil")
	}
	if !isComparable(obs) {
		return errx.NewArgumentError("RegisterObserver", "observer", "must be comparable")
	}
	if h.observers.add(obs) {
		h.logger.Debug("observer registered", zap.String("observer", fmt.Sprintf("%T", obs)))
	}
	return nil
}

// UnregisterObserver removes obs. Removing a non-member is a no-op.
func (h *Hub) UnregisterObserver(obs Observer) error {
	if obs == nil {
		return errx.NewArgumentError("UnregisterObserver", "observer", "must not be nil")
	}
	if !isComparable(obs) {
		return errx.NewArgumentError("UnregisterObserver", "observer", "must be comparable")
	}
	if h.observers.remove(obs) {
		h.logger.Debug("observer unregistered", zap.String("observer", fmt.Sprintf("%T", obs)))
	}
	return nil
}

// RegisterAsyncObserver adds obs to the asynchronous set.
func (h *Hub) RegisterAsyncObserver(obs AsyncObserver) error {
	if obs == nil {
		return errx.NewArgumentError("RegisterAsyncObserver", "observer", "must not be nil")
	}
	if !isComparable(obs) {
		return errx.NewArgumentError("RegisterAsyncObserver", "observer", "must be comparable")
	}
	if h.asyncObservers.add(obs) {
		h.logger.Debug("async observer registered", zap.String("observer", fmt.Sprintf("%T", obs)))
	}
	return nil
}

// UnregisterAsyncObserver removes obs from the asynchronous set.
func (h *Hub) UnregisterAsyncObserver(obs AsyncObserver) error {
	if obs == nil {
		return errx.NewArgumentError("UnregisterAsyncObserver", "observer", "must not be nil")
	}
	if !isComparable(obs) {
		return errx.NewArgumentError("UnregisterAsyncObserver", "observer", "must be comparable")
	}
	if h.asyncObservers.remove(obs) {
		h.logger.Debug("async observer unregistered", zap.String("observer", fmt.Sprintf("%T", obs)))
	}
	return nil
}

// Publish notifies every synchronous observer on the calling goroutine, in
// snapshot order. Observer failures are not isolated: the first error
// stops delivery and is returned to the caller, and panics propagate.
func (h *Hub) Publish(e *errx.Error) error {
	if e == nil {
		return errx.NewArgumentError("Publish", "error", "must not be nil")
	}
	for i, obs := range h.observers.load() {
		if err := obs.OnError(e); err != nil {
			return fmt.Errorf("observer %d (%T): %w", i, obs, err)
		}
	}
	return nil
}

// PublishAsync notifies asynchronous observers one after another in
// snapshot order. ctx is checked before each notification; once it is
// done the remaining observers are skipped and the call fails with
// errx.ErrCancelled. Notifications already delivered are not undone.
func (h *Hub) PublishAsync(ctx context.Context, e *errx.Error) error {
	if e == nil {
		return errx.NewArgumentError("PublishAsync", "error", "must not be nil")
	}
	for i, obs := range h.asyncObservers.load() {
		if err := errx.CheckContext(ctx); err != nil {
			return err
		}
		if err := obs.OnErrorAsync(ctx, e); err != nil {
			return fmt.Errorf("async observer %d (%T): %w", i, obs, err)
		}
	}
	return nil
}

// ObserverCount returns the number of synchronous observers.
func (h *Hub) ObserverCount() int {
	return h.observers.size()
}

// AsyncObserverCount returns the number of asynchronous observers.
func (h *Hub) AsyncObserverCount() int {
	return h.asyncObservers.size()
}

// isComparable reports whether obs can be compared with ==. Slice, map and
// func observers, or structs holding one, would make set membership checks
// panic.
func isComparable(obs any) bool {
	return reflect.ValueOf(obs).Comparable()
}
