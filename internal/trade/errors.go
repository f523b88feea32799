package trade

import "errors"

// Fatal errors: any of these aborts the session. When Engine.Step
// returns one, the engine has moved back to PhaseConnFalse.
var (
	// ErrDesync is returned when a byte counter overflows its bound
	// (404 trade-data bytes, 196 patch bytes) or a byte other than 0xFD
	// arrives during the 6-byte patch-list header. The ordering of the
	// patch list's two sections is not checked here.
	ErrDesync = errors.New("trade: desynchronized from peer")
	// ErrLinkTimeout is wrapped by session.Controller around a byte
	// exchange layer timeout once the session has entered TradeData or
	// later.
	ErrLinkTimeout = errors.New("trade: link timeout")
	// ErrMalformedPatchList is returned when a received patch-list
	// offset falls outside its section's valid range.
	ErrMalformedPatchList = errors.New("trade: malformed patch list")
)
