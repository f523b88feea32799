// Package bel implements the Byte Exchange Layer: the slave-side
// synchronous byte channel between the gadget and the Game Boy's link
// cable clock. It is the only layer in this module that ever suspends
// — everything above it (internal/codec, internal/trade) is strictly
// synchronous, finite-work-per-call code.
package bel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pkmntrade/gbtrade/pkg/log"
)

// ErrTimeout is returned when no clock edge arrives within the
// per-byte budget.
var ErrTimeout = errors.New("bel: timeout waiting for clock edge")

// ErrDesync is returned when a byte frame is only partially clocked in
// before its deadline, so the shift register's bit alignment can no
// longer be trusted.
var ErrDesync = errors.New("bel: desynchronized bit frame")

// ErrCancelled is returned when the controlling context is cancelled
// while a frame is in flight. It wraps the context's own error so
// errors.Is(err, context.Canceled) still holds.
var ErrCancelled = errors.New("bel: session cancelled")

// Transport is the platform-specific collaborator BEL is built on top
// of: whatever drives the physical clock/data lines, or a fake for
// tests and simulation. Controller layers timeout and error
// classification on top of its raw exchange operation.
type Transport interface {
	// ShiftByte shifts out, MSB-first, while collecting an inbound
	// byte, MSB-first, on the session's clock. It returns once a full
	// 8-bit frame has completed or ctx is done.
	ShiftByte(ctx context.Context, out byte) (byte, error)
}

// Controller wraps a Transport with BEL's timeout and error policy.
// It is the only thing above Transport that ever calls ShiftByte.
type Controller struct {
	transport Transport
}

// NewController wraps transport with BEL's exchange policy.
func NewController(transport Transport) *Controller {
	return &Controller{transport: transport}
}

// Exchange performs one BEL exchange: publish out, collect one inbound
// byte, MSB-first both directions, honoring timeout as the per-byte
// deadline. A call to Exchange(B_n) always completes before
// Exchange(B_n+1) begins; concurrent calls are the caller's
// responsibility to avoid.
func (c *Controller) Exchange(ctx context.Context, out byte, timeout time.Duration) (byte, error) {
	byteCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	in, err := c.transport.ShiftByte(byteCtx, out)
	if err == nil {
		return in, nil
	}

	if ctx.Err() != nil {
		return 0, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		log.Debug("bel: per-byte timeout", log.F("out", out))
		return 0, ErrTimeout
	}
	return 0, err
}
