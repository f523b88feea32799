package trade

// Phase identifies where in the trade session the engine currently
// sits. Modeled on the printer accessory's CommandPosition: a single
// tagged position the engine switches on, rather than the two
// conflated enums (trade_centre_state / gameboy_status) the original
// firmware used for the same job.
type Phase int

const (
	// PhaseConnFalse is the initial phase: no link established yet.
	PhaseConnFalse Phase = iota
	// PhaseConnTrue is reached once both sides have exchanged CONNECTED.
	PhaseConnTrue
	// PhaseTcConfirm negotiates entry into the Trade Center submenu.
	PhaseTcConfirm
	// PhaseReady sends the first preamble byte.
	PhaseReady
	// PhasePreamble exchanges the 10-byte 0xFD preamble.
	PhasePreamble
	// PhaseRandom exchanges the 10-byte random seed.
	PhaseRandom
	// PhaseTradeData exchanges the 404-byte party block.
	PhaseTradeData
	// PhasePatchHeader consumes the 6-byte 0xFD patch-list header.
	PhasePatchHeader
	// PhasePatchData exchanges the 196-byte patch list.
	PhasePatchData
	// PhaseSelection awaits the peer's Pokémon pick.
	PhaseSelection
	// PhasePending awaits a LEAVE_TABLE or a selection byte.
	PhasePending
	// PhaseConfirmation awaits the peer's accept/reject of the pick.
	PhaseConfirmation
	// PhaseDone marks a completed trade, about to emit TradeComplete.
	PhaseDone
	// PhaseCleanup exchanges trailing acknowledgments until the peer idles.
	PhaseCleanup
	// PhaseEnd is the terminal phase after a successful cleanup.
	PhaseEnd
	// PhaseColosseum is a terminal, non-trade menu path.
	PhaseColosseum
	// PhaseCancel is the terminal phase entered on LEAVE_TABLE; it does
	// not return to Selection, and Step is a no-op from then on.
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseConnFalse:
		return "ConnFalse"
	case PhaseConnTrue:
		return "ConnTrue"
	case PhaseTcConfirm:
		return "TcConfirm"
	case PhaseReady:
		return "Ready"
	case PhasePreamble:
		return "Preamble"
	case PhaseRandom:
		return "Random"
	case PhaseTradeData:
		return "TradeData"
	case PhasePatchHeader:
		return "PatchHeader"
	case PhasePatchData:
		return "PatchData"
	case PhaseSelection:
		return "Selection"
	case PhasePending:
		return "Pending"
	case PhaseConfirmation:
		return "Confirmation"
	case PhaseDone:
		return "Done"
	case PhaseCleanup:
		return "Cleanup"
	case PhaseEnd:
		return "End"
	case PhaseColosseum:
		return "Colosseum"
	case PhaseCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// Event is what Step reports happened on a tick, beyond the plain
// outbound byte, so the session controller can react without polling
// Phase after every exchange.
type Event int

const (
	// EventNone means the tick produced no session-terminal event.
	EventNone Event = iota
	// EventTradeComplete fires once, on the tick after Phase reaches
	// Done, as the engine moves on to Cleanup.
	EventTradeComplete
	// EventTradeCancelled fires once, on a peer-initiated LEAVE_TABLE or
	// when the peer picks Colosseum from the link menu.
	EventTradeCancelled
	// EventTradeFailed fires once, on a fatal protocol or link error.
	EventTradeFailed
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "None"
	case EventTradeComplete:
		return "TradeComplete"
	case EventTradeCancelled:
		return "TradeCancelled"
	case EventTradeFailed:
		return "TradeFailed"
	default:
		return "Unknown"
	}
}
