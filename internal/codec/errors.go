package codec

import "errors"

// ErrMalformedBlock is returned when a received party block or patch
// list violates its structural invariants: an unterminated species
// list, a count exceeding MaxPartySize, or a patch-list offset outside
// its section's range.
var ErrMalformedBlock = errors.New("codec: malformed party block")

// ErrSlotEmpty is returned by ExtractRecord when the requested slot is
// not occupied by a Pokémon (slot >= block.Count).
var ErrSlotEmpty = errors.New("codec: party slot is empty")
