package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkmntrade/gbtrade/internal/codec"
)

func sampleRecord(species uint8) codec.Record {
	var r codec.Record
	r.Species = species
	r.CurrentHP = 100
	r.Level = 50
	r.Status = 0
	r.Type1, r.Type2 = 1, 2
	r.CatchRateOrItem = 45
	r.Moves = [4]uint8{1, 2, 3, 4}
	r.OTID = 12345
	r.Experience = 125000
	r.EVs = [5]uint16{10, 20, 30, 40, 50}
	r.IV = 0xAAAA
	r.PP = [4]uint8{10, 10, 10, 10}
	r.Stats = [5]uint16{110, 60, 55, 70, 65}
	copy(r.OTName[:], "ASH")
	copy(r.Nickname[:], "SPARKY")
	return r
}

func TestRecord_MarshalUnmarshalRoundTrip(t *testing.T) {
	rec := sampleRecord(25)
	data := rec.MarshalStorage()
	got := codec.UnmarshalRecord(data)
	require.Equal(t, rec, got)
}

func TestBuildPartyFromRecord_CountOne(t *testing.T) {
	rec := sampleRecord(25)
	pb := codec.BuildPartyFromRecord(rec)
	require.Equal(t, uint8(1), pb.Count)
	require.Equal(t, rec.Species, pb.Species[0])

	got, err := pb.ExtractRecord(0)
	require.NoError(t, err)
	require.Equal(t, rec, got)
}

func TestBuildPartyFromRecords_CountSix(t *testing.T) {
	recs := make([]codec.Record, 6)
	for i := range recs {
		recs[i] = sampleRecord(uint8(i + 1))
	}
	pb := codec.BuildPartyFromRecords(recs)
	require.Equal(t, uint8(6), pb.Count)
	require.NoError(t, pb.Validate())

	for i := range recs {
		got, err := pb.ExtractRecord(i)
		require.NoError(t, err)
		require.Equal(t, recs[i], got)
	}
}

func TestExtractRecord_OutOfRangeSlot(t *testing.T) {
	pb := codec.BuildPartyFromRecord(sampleRecord(25))
	_, err := pb.ExtractRecord(1)
	require.ErrorIs(t, err, codec.ErrSlotEmpty)
}

func TestEncodeDecodePartyOutbound_RoundTrip(t *testing.T) {
	pb := codec.BuildPartyFromRecord(sampleRecord(25))

	encoded, patch, err := codec.EncodePartyOutbound(pb)
	require.NoError(t, err)

	decoded, err := codec.DecodePartyInbound(encoded, patch)
	require.NoError(t, err)
	require.Equal(t, pb, decoded)
}

func TestEncodePartyOutbound_ZeroPreambleBytesProducesMinimalPatchList(t *testing.T) {
	rec := sampleRecord(1)
	rec.IV = 0 // avoid accidentally producing a 0xFD byte
	pb := codec.BuildPartyFromRecord(rec)

	_, patch, err := codec.EncodePartyOutbound(pb)
	require.NoError(t, err)

	var want codec.PatchList
	want[3] = codec.PatchSep
	want[4] = codec.PatchSep
	require.Equal(t, want, patch)
}

func TestPartyBlock_CountOneAndSixBothAccepted(t *testing.T) {
	one := codec.BuildPartyFromRecord(sampleRecord(1))
	require.NoError(t, one.Validate())

	recs := make([]codec.Record, 6)
	for i := range recs {
		recs[i] = sampleRecord(uint8(i + 1))
	}
	six := codec.BuildPartyFromRecords(recs)
	require.NoError(t, six.Validate())
}
