package trade_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkmntrade/gbtrade/internal/bel"
	"github.com/pkmntrade/gbtrade/internal/codec"
	"github.com/pkmntrade/gbtrade/internal/trade"
)

// driveSession feeds inbound one byte at a time through a BEL
// controller backed by a FakeTransport and the engine's Step, exactly
// the loop pkg/session.Controller runs in production. It stops at the
// first terminal event or once inbound is exhausted, whichever comes
// first. outbound holds every byte sent; when a terminal event stops
// the loop, it also ends with the engine's reply to the final inbound
// byte, the byte the next exchange would send.
func driveSession(t *testing.T, e *trade.Engine, inbound []byte) (outbound []byte, event trade.Event) {
	t.Helper()
	transport := bel.NewFakeTransport(inbound...)
	ctrl := bel.NewController(transport)

	out := trade.Slave
	for i := 0; i < len(inbound); i++ {
		in, err := ctrl.Exchange(context.Background(), out, time.Second)
		require.NoError(t, err)
		outbound = append(outbound, out)

		var ev trade.Event
		out, ev, err = e.Step(in)
		require.NoError(t, err)
		if ev != trade.EventNone {
			return append(outbound, out), ev
		}
	}
	return outbound, trade.EventNone
}

func testPeerRecord() codec.Record {
	var r codec.Record
	r.Species = 85 // internal Gen I index for Pikachu, not its Pokédex number
	r.CurrentHP = 35
	r.Level = 5
	r.Type1, r.Type2 = 13, 13
	r.Moves = [4]uint8{84, 0, 0, 0}
	r.OTID = 1
	r.Experience = 125
	r.Stats = [5]uint16{35, 20, 18, 30, 16}
	copy(r.OTName[:], "RED")
	copy(r.Nickname[:], "PIKACHU")
	return r
}

func bytesOf(n int, v byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = v
	}
	return b
}

func connectAndNegotiate(cfg trade.Config) []byte {
	seq := []byte{trade.Master, trade.Connected}
	for i := 0; i < cfg.TcConfirmMaxAttempts; i++ {
		seq = append(seq, trade.TradeCenter)
	}
	seq = append(seq, 0x00) // last TcConfirm byte: TcConfirm -> Ready
	return seq
}

func TestEngine_Scenario1_HappyPath(t *testing.T) {
	sendRec := testPeerRecord()
	sendRec.Species = 1
	outBlock, outPatch, err := codec.EncodePartyOutbound(codec.BuildPartyFromRecord(sendRec))
	require.NoError(t, err)

	cfg := trade.NewConfig()
	e := trade.NewEngine(cfg, outBlock, outPatch)

	peerBlock := codec.BuildPartyFromRecord(testPeerRecord())
	peerEncoded, peerPatch, err := codec.EncodePartyOutbound(peerBlock)
	require.NoError(t, err)

	var inbound []byte
	inbound = append(inbound, connectAndNegotiate(cfg)...)
	inbound = append(inbound, bytesOf(9, trade.Preamble)...) // Ready -> Preamble, preambleCount 1->9
	inbound = append(inbound, bytesOf(10, 0xAA)...)          // first byte takes the degraded path into Random; seed values have no state effect
	inbound = append(inbound, peerEncoded[:]...)
	inbound = append(inbound, bytesOf(6, trade.Preamble)...)
	inbound = append(inbound, peerPatch[:]...)
	inbound = append(inbound, trade.Blank)       // Selection
	inbound = append(inbound, trade.SelNumMask)  // Pending: peer picks slot 0
	inbound = append(inbound, trade.TradeAccept) // Confirmation
	inbound = append(inbound, trade.Blank)       // Done

	_, event := driveSession(t, e, inbound)

	require.Equal(t, trade.EventTradeComplete, event)
	require.Equal(t, peerBlock, e.Received())
}

func TestEngine_Scenario2_PeerCancelsDuringSelection(t *testing.T) {
	cfg := trade.NewConfig()
	outBlock, outPatch, err := codec.EncodePartyOutbound(codec.BuildPartyFromRecord(testPeerRecord()))
	require.NoError(t, err)
	e := trade.NewEngine(cfg, outBlock, outPatch)

	peerEncoded, peerPatch, err := codec.EncodePartyOutbound(codec.BuildPartyFromRecord(testPeerRecord()))
	require.NoError(t, err)

	var inbound []byte
	inbound = append(inbound, connectAndNegotiate(cfg)...)
	inbound = append(inbound, bytesOf(9, trade.Preamble)...)
	inbound = append(inbound, bytesOf(10, 0xAA)...)
	inbound = append(inbound, peerEncoded[:]...)
	inbound = append(inbound, bytesOf(6, trade.Preamble)...)
	inbound = append(inbound, peerPatch[:]...)
	inbound = append(inbound, trade.Blank)
	inbound = append(inbound, trade.LeaveTable)

	outbound, event := driveSession(t, e, inbound)

	require.Equal(t, trade.EventTradeCancelled, event)
	require.Equal(t, trade.LeaveTable, outbound[len(outbound)-1])
	require.Equal(t, trade.PhaseCancel, e.Phase())
}

func TestEngine_Scenario3_MenuPicksColosseum(t *testing.T) {
	cfg := trade.NewConfig()
	outBlock, outPatch, err := codec.EncodePartyOutbound(codec.BuildPartyFromRecord(testPeerRecord()))
	require.NoError(t, err)
	e := trade.NewEngine(cfg, outBlock, outPatch)

	inbound := []byte{trade.Master, trade.Connected, trade.Colosseum}
	outbound, event := driveSession(t, e, inbound)

	require.Equal(t, trade.EventTradeCancelled, event)
	require.Equal(t, trade.Colosseum, outbound[len(outbound)-1])
	require.Equal(t, trade.PhaseColosseum, e.Phase())
}

func TestEngine_Scenario4_StuckNegotiationStillReachesReady(t *testing.T) {
	cfg := trade.NewConfig()
	outBlock, outPatch, err := codec.EncodePartyOutbound(codec.BuildPartyFromRecord(testPeerRecord()))
	require.NoError(t, err)
	e := trade.NewEngine(cfg, outBlock, outPatch)

	inbound := []byte{trade.Master, trade.Connected, trade.TradeCenter}
	for i := 0; i < 10; i++ {
		inbound = append(inbound, 0x00, 0xD0)
	}

	transport := bel.NewFakeTransport(inbound...)
	ctrl := bel.NewController(transport)
	out := trade.Slave
	reachedReady := false
	for i := 0; i < len(inbound); i++ {
		in, err := ctrl.Exchange(context.Background(), out, time.Second)
		require.NoError(t, err)
		var ev trade.Event
		out, ev, err = e.Step(in)
		require.NoError(t, err)
		require.Equal(t, trade.EventNone, ev)
		if e.Phase() == trade.PhaseReady || e.Phase() == trade.PhasePreamble {
			reachedReady = true
			break
		}
	}
	require.True(t, reachedReady, "engine should reach Ready within the negotiation attempt ceiling")
}

func TestEngine_Scenario5_ClockStallMidBlockIsTolerated(t *testing.T) {
	cfg := trade.NewConfig(trade.WithStallTolerance(300 * time.Second))
	outBlock, outPatch, err := codec.EncodePartyOutbound(codec.BuildPartyFromRecord(testPeerRecord()))
	require.NoError(t, err)
	e := trade.NewEngine(cfg, outBlock, outPatch)

	peerEncoded, _, err := codec.EncodePartyOutbound(codec.BuildPartyFromRecord(testPeerRecord()))
	require.NoError(t, err)

	var inbound []byte
	inbound = append(inbound, connectAndNegotiate(cfg)...)
	inbound = append(inbound, bytesOf(9, trade.Preamble)...)
	inbound = append(inbound, bytesOf(10, 0xAA)...)
	inbound = append(inbound, peerEncoded[:200]...)

	transport := bel.NewFakeTransport(inbound...)
	ctrl := bel.NewController(transport)
	out := trade.Slave
	for i := 0; i < len(inbound); i++ {
		in, err := ctrl.Exchange(context.Background(), out, time.Second)
		require.NoError(t, err)
		var ev trade.Event
		out, ev, err = e.Step(in)
		require.NoError(t, err)
		require.Equal(t, trade.EventNone, ev)
	}
	require.Equal(t, trade.PhaseTradeData, e.Phase())

	// A stall shorter than the stall tolerance never reaches BEL/engine
	// as an error at all: the session controller simply keeps waiting
	// on its next Exchange call. Feed the remaining bytes after the
	// simulated gap and confirm the session completes normally.
	transport.Feed(peerEncoded[200:]...)
	for i := 0; i < len(peerEncoded)-200; i++ {
		in, err := ctrl.Exchange(context.Background(), out, time.Second)
		require.NoError(t, err)
		var ev trade.Event
		out, ev, err = e.Step(in)
		require.NoError(t, err)
		require.Equal(t, trade.EventNone, ev)
	}
	require.Equal(t, trade.PhasePatchHeader, e.Phase())
}

func TestEngine_Scenario6_PatchRestoration(t *testing.T) {
	rec := testPeerRecord()
	rec.OTID = 0xFDFD // forces literal 0xFD bytes into the record's wire core
	pb := codec.BuildPartyFromRecord(rec)

	encoded, patch, err := codec.EncodePartyOutbound(pb)
	require.NoError(t, err)

	decoded, err := codec.DecodePartyInbound(encoded, patch)
	require.NoError(t, err)
	require.Equal(t, pb, decoded)

	// Every literal 0xFD byte in the original block was replaced with
	// NoData in the wire form, and restored exactly on decode.
	raw := pb.ExtractRaw()
	for i, b := range raw {
		if b == codec.Preamble {
			require.Equal(t, codec.NoData, encoded[i], "offset %d should carry the sentinel on the wire", i)
		}
	}
}
