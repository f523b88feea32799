package storage

import "errors"

var (
	// ErrBadMagic is returned when a slot's header magic doesn't match,
	// meaning the medium holds something other than a StorageSlot (or
	// nothing at all) at that offset.
	ErrBadMagic = errors.New("storage: bad slot magic")

	// ErrBadSize is returned when a slot's declared data size doesn't
	// match the fixed payload size this repo always writes.
	ErrBadSize = errors.New("storage: unexpected data size")

	// ErrChecksum is returned when a slot's stored checksum doesn't
	// match its payload, meaning the medium was corrupted or truncated
	// between write and read.
	ErrChecksum = errors.New("storage: checksum mismatch")

	// ErrSlotOutOfRange is returned by a Medium when asked to read or
	// write a slot index it doesn't have room for.
	ErrSlotOutOfRange = errors.New("storage: slot index out of range")
)
