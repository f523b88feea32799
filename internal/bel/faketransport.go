package bel

import (
	"context"
	"sync"
)

// FakeTransport is an in-memory Transport, the Go analogue of
// gomeboy's internal/serial "null device": something BEL can be driven
// against without real hardware, used by tests (driving a known wire
// trace through internal/trade end-to-end) and by cmd/gbtrade's
// -simulate mode.
//
// It models a peer clocking bytes to us: NewFakeTransport and Feed
// queue bytes a test wants the gadget to receive, and Outbound()
// returns a copy of the bytes the gadget has sent so far.
type FakeTransport struct {
	mu       sync.Mutex
	inbound  []byte
	outbound []byte
}

// NewFakeTransport returns a FakeTransport preloaded with the bytes a
// peer will clock in, in order.
func NewFakeTransport(inbound ...byte) *FakeTransport {
	return &FakeTransport{inbound: append([]byte(nil), inbound...)}
}

// Feed appends more bytes to the inbound queue, for tests that need to
// react to the gadget's output before deciding what to send next.
func (f *FakeTransport) Feed(b ...byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inbound = append(f.inbound, b...)
}

// Outbound returns every byte shifted out so far, in order.
func (f *FakeTransport) Outbound() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.outbound...)
}

// ShiftByte implements Transport. It never itself times out; a
// FakeTransport with an empty inbound queue blocks until ctx is done,
// the same way a real transport waiting for a clock edge would.
func (f *FakeTransport) ShiftByte(ctx context.Context, out byte) (byte, error) {
	f.mu.Lock()
	if len(f.inbound) == 0 {
		f.mu.Unlock()
		<-ctx.Done()
		return 0, ctx.Err()
	}
	in := f.inbound[0]
	f.inbound = f.inbound[1:]
	f.outbound = append(f.outbound, out)
	f.mu.Unlock()
	return in, nil
}
