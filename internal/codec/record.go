package codec

import (
	"github.com/pkmntrade/gbtrade/pkg/utils"
)

// RecordSize is the size of the gadget's internal per-Pokémon storage
// representation. Only the first wireCoreSize+2*wireNameSize bytes
// carry fields the wire format touches; the remainder is reserved for display/extension
// use and is round-tripped unchanged by the storage layer.
const RecordSize = 415

// wireCoreSize is the size of the 44-byte party-record slot a Record
// maps onto, and wireNameSize the size of the 11-byte OT name and
// 11-byte nickname that travel alongside it in the party block.
const (
	wireCoreSize = 44
	wireNameSize = 11
)

// Record is the gadget's internal representation of a single Pokémon,
// independent of its position in a party block. Field order and
// endianness for the wire-facing fields follow the original 44-byte
// slot layout exactly ("species, HP, status, types, catch rate/held
// item, 4 move IDs, OT ID, 3-byte experience, five 2-byte EVs, 2-byte
// IV, four 1-byte PP, level, five 2-byte current stats"); Level is
// stored once here since a Record has no notion of "early" vs "late"
// copy, and encodeWireCore re-derives the duplicate byte the
// 44-byte slot layout requires (see DESIGN.md).
type Record struct {
	Species         uint8
	CurrentHP       uint16
	Status          uint8
	Type1, Type2    uint8
	CatchRateOrItem uint8
	Moves           [4]uint8
	OTID            uint16
	Experience      uint32 // low 24 bits significant
	EVs             [5]uint16
	IV              uint16
	PP              [4]uint8
	Level           uint8
	Stats           [5]uint16 // current HP, Atk, Def, Spd, Spc

	OTName   [wireNameSize]byte
	Nickname [wireNameSize]byte
}

// IsValid checks the invariants a PokémonRecord must hold: non-zero
// species and a level in [1,100].
func (r Record) IsValid() bool {
	return r.Species != 0 && r.Level >= 1 && r.Level <= 100
}

// encodeWireCore packs r's wire-facing fields into the 44-byte layout
// a party block slot uses. Byte 3 and byte 33 both carry Level,
// matching the real Gen I party structure's duplicated level byte so
// the slot is exactly 44 bytes (see DESIGN.md for why two copies).
func (r Record) encodeWireCore() [wireCoreSize]byte {
	var b [wireCoreSize]byte
	b[0] = r.Species
	hiHP, loHP := utils.Uint16ToBytes(r.CurrentHP)
	b[1], b[2] = hiHP, loHP
	b[3] = r.Level
	b[4] = r.Status
	b[5] = r.Type1
	b[6] = r.Type2
	b[7] = r.CatchRateOrItem
	copy(b[8:12], r.Moves[:])
	hiOT, loOT := utils.Uint16ToBytes(r.OTID)
	b[12], b[13] = hiOT, loOT
	b[14] = byte(r.Experience >> 16)
	b[15] = byte(r.Experience >> 8)
	b[16] = byte(r.Experience)
	for i, ev := range r.EVs {
		hi, lo := utils.Uint16ToBytes(ev)
		b[17+i*2], b[18+i*2] = hi, lo
	}
	hiIV, loIV := utils.Uint16ToBytes(r.IV)
	b[27], b[28] = hiIV, loIV
	copy(b[29:33], r.PP[:])
	b[33] = r.Level
	for i, st := range r.Stats {
		lo, hi := utils.Uint16ToBytesLE(st)
		b[34+i*2], b[35+i*2] = lo, hi
	}
	return b
}

// decodeWireCore is the inverse of encodeWireCore.
func decodeWireCore(b [wireCoreSize]byte) Record {
	var r Record
	r.Species = b[0]
	r.CurrentHP = utils.BytesToUint16(b[1], b[2])
	r.Level = b[3]
	r.Status = b[4]
	r.Type1 = b[5]
	r.Type2 = b[6]
	r.CatchRateOrItem = b[7]
	copy(r.Moves[:], b[8:12])
	r.OTID = utils.BytesToUint16(b[12], b[13])
	r.Experience = uint32(b[14])<<16 | uint32(b[15])<<8 | uint32(b[16])
	for i := range r.EVs {
		r.EVs[i] = utils.BytesToUint16(b[17+i*2], b[18+i*2])
	}
	r.IV = utils.BytesToUint16(b[27], b[28])
	copy(r.PP[:], b[29:33])
	// b[33] is the duplicate level byte; r.Level already set from b[3].
	for i := range r.Stats {
		r.Stats[i] = utils.BytesToUint16LE(b[34+i*2], b[35+i*2])
	}
	return r
}

// MarshalStorage serializes r into the gadget's 415-byte storage
// representation. Bytes beyond the wire-facing fields are zeroed.
func (r Record) MarshalStorage() [RecordSize]byte {
	var out [RecordSize]byte
	core := r.encodeWireCore()
	copy(out[0:wireCoreSize], core[:])
	copy(out[wireCoreSize:wireCoreSize+wireNameSize], r.OTName[:])
	copy(out[wireCoreSize+wireNameSize:wireCoreSize+2*wireNameSize], r.Nickname[:])
	return out
}

// UnmarshalRecord is the inverse of MarshalStorage.
func UnmarshalRecord(data [RecordSize]byte) Record {
	var core [wireCoreSize]byte
	copy(core[:], data[0:wireCoreSize])
	r := decodeWireCore(core)
	copy(r.OTName[:], data[wireCoreSize:wireCoreSize+wireNameSize])
	copy(r.Nickname[:], data[wireCoreSize+wireNameSize:wireCoreSize+2*wireNameSize])
	return r
}
