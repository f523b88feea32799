package session

import "errors"

// ErrNoSendRecord is returned by Run when the configured send slot
// has never been written, so there's no outgoing Pokémon to offer.
var ErrNoSendRecord = errors.New("session: send slot is empty")

// ErrInvalidSendRecord is returned when the send slot decodes but
// fails the PokémonRecord invariants.
var ErrInvalidSendRecord = errors.New("session: send record fails validation")

// ErrAlreadyRunning is returned by Run if called while a previous Run
// on the same Controller is still in flight.
var ErrAlreadyRunning = errors.New("session: controller is already running")
