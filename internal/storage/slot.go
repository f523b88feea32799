// Package storage implements the gadget's non-volatile StorageSlot
// format: a fixed-size, checksummed record of the last Pokémon
// configured to be sent, durable across power loss.
package storage

import "encoding/binary"

// Magic identifies a valid StorageSlot header.
const Magic uint32 = 0x504B4D4E

// PayloadSize is the size of a StorageSlot's Pokémon record payload,
// matching codec.RecordSize.
const PayloadSize = 415

// slotSize is the total on-medium size of one encoded slot: magic(4) +
// data_size(4) + checksum(4) + timestamp(8) + payload(415).
const slotSize = 4 + 4 + 4 + 8 + PayloadSize

// SlotSize is the fixed byte footprint of one StorageSlot on its
// backing medium.
const SlotSize = slotSize

// Slot is the gadget's non-volatile record of a single Pokémon send
// configuration: the exact bytes to present as the outbound trade
// record on the next session, plus enough metadata to detect a
// corrupt or stale write.
type Slot struct {
	DataSize  uint32
	Checksum  uint32
	Timestamp int64
	Payload   [PayloadSize]byte
}

// NewSlot builds a Slot from a 415-byte payload, stamping its checksum
// and size. timestamp is caller-supplied (Unix seconds) so storage
// stays free of wall-clock reads, matching the rest of this repo's
// explicit-time discipline.
func NewSlot(payload [PayloadSize]byte, timestamp int64) Slot {
	return Slot{
		DataSize:  PayloadSize,
		Checksum:  checksum(payload[:]),
		Timestamp: timestamp,
		Payload:   payload,
	}
}

// checksum is the additive sum of data bytes mod 2^32, the literal
// algorithm the wire/storage contract fixes — not a stand-in for a
// stronger hash.
func checksum(data []byte) uint32 {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return sum
}

// Verify reports whether s's checksum and data size are internally
// consistent.
func (s Slot) Verify() error {
	if s.DataSize != PayloadSize {
		return ErrBadSize
	}
	if checksum(s.Payload[:]) != s.Checksum {
		return ErrChecksum
	}
	return nil
}

// Marshal encodes s into its fixed-size on-medium form.
func (s Slot) Marshal() [slotSize]byte {
	var out [slotSize]byte
	binary.BigEndian.PutUint32(out[0:4], Magic)
	binary.BigEndian.PutUint32(out[4:8], s.DataSize)
	binary.BigEndian.PutUint32(out[8:12], s.Checksum)
	binary.BigEndian.PutUint64(out[12:20], uint64(s.Timestamp))
	copy(out[20:], s.Payload[:])
	return out
}

// Unmarshal decodes a Slot from its on-medium form, verifying the
// magic header and the checksum before returning.
func Unmarshal(data [slotSize]byte) (Slot, error) {
	if binary.BigEndian.Uint32(data[0:4]) != Magic {
		return Slot{}, ErrBadMagic
	}
	var s Slot
	s.DataSize = binary.BigEndian.Uint32(data[4:8])
	s.Checksum = binary.BigEndian.Uint32(data[8:12])
	s.Timestamp = int64(binary.BigEndian.Uint64(data[12:20]))
	copy(s.Payload[:], data[20:])
	if err := s.Verify(); err != nil {
		return Slot{}, err
	}
	return s, nil
}
