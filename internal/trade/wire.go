// Package trade implements the Gen I Trade Center protocol engine: the
// state machine that turns a stream of inbound bytes clocked in by the
// byte exchange layer into outbound bytes, ending in a traded party
// block or a cancellation.
package trade

import "github.com/pkmntrade/gbtrade/internal/codec"

// Wire byte constants for the Gen I link protocol. Names follow the
// real ROM's own terminology (see PRET's pokered disassembly), not an
// internal renaming, so a trace of exchanged bytes reads the same way
// here as it does against real hardware.
//
// Preamble, NoData and PatchSep belong to the party block's sentinel
// encoding and live in internal/codec (codec.Preamble etc.) since that
// package owns the wire layout. This package gives Preamble, the one
// it exchanges during the preamble and patch-header phases, a local
// name bound to codec.Preamble rather than a second literal.
const Preamble = codec.Preamble // frame-alignment marker

const (
	Master      byte = 0x01 // peer announces master role
	Slave       byte = 0x02 // we announce slave role
	Blank       byte = 0x00 // idle/filler
	Connected   byte = 0x60 // connection alive
	TradeCenter byte = 0xD4 // menu selection: Trade Center
	Colosseum   byte = 0xD5 // menu selection: Colosseum
	BreakLink   byte = 0xD6 // menu selection: cancel link

	SelNumMask   byte = 0x60 // OR with slot (0-5) for a Pokémon pick
	TradeReject  byte = 0x61
	TradeAccept  byte = 0x62
	LeaveTable   byte = 0x6F
	tcConfirmAlt byte = 0xD0 // alternate negotiation byte seen during TcConfirm
)

// Sizing constants from the wire layout.
const (
	PreambleLen    = 10
	RandomSeedLen  = 10
	PatchHeaderLen = 6
)
