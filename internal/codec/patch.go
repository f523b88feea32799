package codec

import "fmt"

// Sentinel bytes for the party block's wire encoding. Preamble can't
// appear literally in an encoded block (it would be mistaken for a new
// frame's alignment marker), so occurrences are rewritten to NoData
// and listed in a PatchList for the receiver to undo.
const (
	Preamble byte = 0xFD
	NoData   byte = 0xFE
	PatchSep byte = 0xFF
)

// PartyBlockSize is the wire size of an encoded party block.
const PartyBlockSize = 404

// PatchListSize is the wire size of a PatchList.
const PatchListSize = 196

// patchSection1Hi/patchSection2Hi bound the two patch-list sections; see
// PatchList's doc comment for how offsets map onto them.
const (
	patchSection1Hi = 0xFB
	patchSection2Hi = 0x1FB
)

// patchLeaderSize is the fixed zero-byte leader ahead of the two
// offset sections.
const patchLeaderSize = 3

// PatchList is the 196-byte structure that tells the receiving side
// which bytes of an encoded 404-byte party block were rewritten from a
// literal Preamble (0xFD) to NoData (0xFE) before being sent, so it
// can undo the rewrite after reassembling the block.
//
// Layout: a 3-byte zero leader, then section 1's offset bytes, a
// PatchSep terminating section 1, section 2's offset bytes, a PatchSep
// terminating section 2, then zero padding out to PatchListSize.
// Section 1 carries 1-based offsets in [1, patchSection1Hi]; section 2
// carries offsets in (patchSection1Hi, patchSection2Hi] as a value
// relative to patchSection1Hi, since each entry is a single byte.
type PatchList [PatchListSize]byte

// EncodePartyOutbound rewrites any literal Preamble byte in a party
// block's raw 404-byte form to NoData and returns both the rewritten
// block and the patch list describing where the rewrites happened.
// Bytes are scanned and assigned 1-based offsets in wire order
// (count byte is offset 1).
func EncodePartyOutbound(pb PartyBlock) (encoded [PartyBlockSize]byte, patch PatchList, err error) {
	raw := pb.marshalRaw()

	var section1, section2 []byte
	for i, b := range raw {
		if b != Preamble {
			encoded[i] = b
			continue
		}
		encoded[i] = NoData
		offset := i + 1
		switch {
		case offset <= patchSection1Hi:
			section1 = append(section1, byte(offset))
		case offset <= patchSection2Hi:
			section2 = append(section2, byte(offset-patchSection1Hi))
		default:
			return encoded, patch, fmt.Errorf("codec: preamble byte at offset %d exceeds patchable range", offset)
		}
	}

	if patchLeaderSize+len(section1)+1+len(section2)+1 > PatchListSize {
		return encoded, patch, fmt.Errorf("codec: patch list overflow: %d preamble bytes found", len(section1)+len(section2))
	}

	n := patchLeaderSize
	n += copy(patch[n:], section1)
	patch[n] = PatchSep
	n++
	n += copy(patch[n:], section2)
	patch[n] = PatchSep

	return encoded, patch, nil
}

// DecodePartyInbound reverses EncodePartyOutbound: it restores every
// NoData byte the patch list marks as a rewritten Preamble, then
// parses the result into a PartyBlock.
func DecodePartyInbound(encoded [PartyBlockSize]byte, patch PatchList) (PartyBlock, error) {
	raw := encoded

	idx := patchLeaderSize
	for idx < len(patch) && patch[idx] != PatchSep {
		offset := int(patch[idx])
		if offset < 1 || offset > patchSection1Hi || offset > len(raw) {
			return PartyBlock{}, fmt.Errorf("%w: patch list section 1 offset %d out of range", ErrMalformedBlock, offset)
		}
		raw[offset-1] = Preamble
		idx++
	}
	idx++ // skip section-1 terminator

	for idx < len(patch) && patch[idx] != PatchSep {
		offset := patchSection1Hi + int(patch[idx])
		if offset <= patchSection1Hi || offset > patchSection2Hi || offset > len(raw) {
			return PartyBlock{}, fmt.Errorf("%w: patch list section 2 offset %d out of range", ErrMalformedBlock, offset)
		}
		raw[offset-1] = Preamble
		idx++
	}

	if n := int(raw[0]); n <= MaxPartySize && raw[speciesListOffset+n] != speciesTerminator {
		return PartyBlock{}, fmt.Errorf("%w: species list not terminated after %d entries", ErrMalformedBlock, n)
	}

	pb := unmarshalRaw(raw)
	if err := pb.Validate(); err != nil {
		return PartyBlock{}, err
	}
	return pb, nil
}
