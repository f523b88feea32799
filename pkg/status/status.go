// Package status defines the gadget's read-only status-observation
// contract and a small broadcaster that fans snapshots out to any
// number of connected observers over a websocket.
package status

// Outcome tags how a finished session ended.
type Outcome int

const (
	// OutcomeNone means the session this Status describes hasn't
	// finished yet.
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeCancelled:
		return "Cancelled"
	case OutcomeFailed:
		return "Failed"
	default:
		return "None"
	}
}

// Status is a single snapshot of a trade session, safe to copy and
// hand to an observer by value: it carries no pointer or slice field
// that aliases the session controller's own memory, so a reader never
// sees a session mutate state it has already captured.
type Status struct {
	SessionID             string  `json:"session_id"`
	Phase                 string  `json:"phase"`
	BytesExchangedInPhase int     `json:"bytes_exchanged_in_phase"`
	ReceivedSpecies       string  `json:"received_species,omitempty"`
	Outcome               Outcome `json:"-"`
	OutcomeName           string  `json:"outcome"`
	LastError             string  `json:"last_error,omitempty"`
}

// New builds a Status, deriving OutcomeName from Outcome so JSON
// observers never have to decode the numeric tag.
func New(sessionID, phase string, bytesInPhase int, receivedSpecies string, outcome Outcome, lastErr string) Status {
	return Status{
		SessionID:             sessionID,
		Phase:                 phase,
		BytesExchangedInPhase: bytesInPhase,
		ReceivedSpecies:       receivedSpecies,
		Outcome:               outcome,
		OutcomeName:           outcome.String(),
		LastError:             lastErr,
	}
}
