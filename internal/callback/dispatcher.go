package callback

import (
	"context"
	"log/slog"
)

// Handler processes one kind of case-event callback. CanHandle must be
// cheap and side-effect free; Handle may mutate the callback's case data,
// which the transport echoes back to the caller.
type Handler interface {
	CanHandle(callbackType Type, cb *Callback) bool
	Handle(ctx context.Context, callbackType Type, cb *Callback) error
}

// Dispatcher fans a callback out to every handler that claims it, in
// registration order. The first handler error stops the chain.
type Dispatcher struct {
	handlers []Handler
	logger   *slog.Logger
}

// NewDispatcher builds a dispatcher over the given handlers.
func NewDispatcher(logger *slog.Logger, handlers ...Handler) *Dispatcher {
	return &Dispatcher{handlers: handlers, logger: logger}
}

// Dispatch routes the callback. A callback no handler claims is not an
// error; the engine simply has nothing to do for that event.
func (d *Dispatcher) Dispatch(ctx context.Context, callbackType Type, cb *Callback) error {
	handled := 0
	for _, h := range d.handlers {
		if !h.CanHandle(callbackType, cb) {
			continue
		}
		handled++
		if err := h.Handle(ctx, callbackType, cb); err != nil {
			return err
		}
	}
	if handled == 0 {
		d.logger.Info("no handler for callback",
			"case_id", cb.CaseDetails.CaseID(),
			"event", cb.Event,
			"callback_type", callbackType,
		)
	}
	return nil
}
