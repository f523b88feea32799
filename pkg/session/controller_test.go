package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkmntrade/gbtrade/internal/bel"
	"github.com/pkmntrade/gbtrade/internal/codec"
	"github.com/pkmntrade/gbtrade/internal/storage"
	"github.com/pkmntrade/gbtrade/internal/trade"
	"github.com/pkmntrade/gbtrade/pkg/session"
	"github.com/pkmntrade/gbtrade/pkg/status"
)

func sendRecord() codec.Record {
	var r codec.Record
	r.Species = 154 // internal Gen I index for Bulbasaur
	r.Level = 5
	r.CurrentHP = 20
	r.Stats = [5]uint16{20, 10, 10, 10, 10}
	copy(r.OTName[:], "RED")
	copy(r.Nickname[:], "BULBASAUR")
	return r
}

func peerRecord() codec.Record {
	var r codec.Record
	r.Species = 85 // internal Gen I index for Pikachu, not its Pokédex number
	r.Level = 10
	r.CurrentHP = 35
	r.Stats = [5]uint16{35, 20, 18, 30, 16}
	copy(r.OTName[:], "BLUE")
	copy(r.Nickname[:], "PIKACHU")
	return r
}

func happyPathInbound(cfg trade.Config, peer codec.Record) []byte {
	peerEncoded, peerPatch, _ := codec.EncodePartyOutbound(codec.BuildPartyFromRecord(peer))

	seq := []byte{trade.Master, trade.Connected}
	for i := 0; i < cfg.TcConfirmMaxAttempts; i++ {
		seq = append(seq, trade.TradeCenter)
	}
	seq = append(seq, 0x00)
	for i := 0; i < 9; i++ {
		seq = append(seq, trade.Preamble)
	}
	for i := 0; i < 10; i++ {
		seq = append(seq, 0xAA)
	}
	seq = append(seq, peerEncoded[:]...)
	for i := 0; i < 6; i++ {
		seq = append(seq, trade.Preamble)
	}
	seq = append(seq, peerPatch[:]...)
	seq = append(seq, trade.Blank, trade.SelNumMask, trade.TradeAccept, trade.Blank)
	return seq
}

func newMediumWithSendSlot(t *testing.T, rec codec.Record) storage.Medium {
	t.Helper()
	m := storage.NewMemMedium(1)
	require.NoError(t, m.WriteSlot(0, storage.NewSlot(rec.MarshalStorage(), 1700000000)))
	return m
}

func TestController_Run_HappyPathPersistsReceivedRecord(t *testing.T) {
	cfg := trade.NewConfig(trade.WithByteTimeout(50 * time.Millisecond))
	medium := newMediumWithSendSlot(t, sendRecord())
	transport := bel.NewFakeTransport(happyPathInbound(cfg, peerRecord())...)

	ctrl := session.NewController(cfg, medium, 0, 0, transport, nil)
	outcome, err := ctrl.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, status.OutcomeSuccess, outcome)

	slot, err := medium.ReadSlot(0)
	require.NoError(t, err)
	got := codec.UnmarshalRecord(slot.Payload)
	require.Equal(t, peerRecord().Species, got.Species)

	snap := ctrl.Snapshot()
	require.Equal(t, status.OutcomeSuccess, snap.Outcome)
	require.Equal(t, "Pikachu", snap.ReceivedSpecies)
}

func TestController_Run_EmptySendSlotFails(t *testing.T) {
	cfg := trade.NewConfig()
	medium := storage.NewMemMedium(1) // never written
	transport := bel.NewFakeTransport()

	ctrl := session.NewController(cfg, medium, 0, 0, transport, nil)
	outcome, err := ctrl.Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, session.ErrNoSendRecord)
	require.Equal(t, status.OutcomeFailed, outcome)
}

func TestController_Run_CancelStopsSessionPromptly(t *testing.T) {
	cfg := trade.NewConfig(trade.WithByteTimeout(time.Second))
	medium := newMediumWithSendSlot(t, sendRecord())
	transport := bel.NewFakeTransport() // never supplies a byte: blocks until cancelled

	ctrl := session.NewController(cfg, medium, 0, 0, transport, nil)

	done := make(chan struct{})
	var outcome status.Outcome
	go func() {
		outcome, _ = ctrl.Run(context.Background())
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	ctrl.Cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Cancel")
	}
	require.Equal(t, status.OutcomeCancelled, outcome)
}

func TestController_Run_RejectsConcurrentRun(t *testing.T) {
	cfg := trade.NewConfig(trade.WithByteTimeout(time.Second))
	medium := newMediumWithSendSlot(t, sendRecord())
	transport := bel.NewFakeTransport()

	ctrl := session.NewController(cfg, medium, 0, 0, transport, nil)

	go ctrl.Run(context.Background())
	time.Sleep(10 * time.Millisecond)

	_, err := ctrl.Run(context.Background())
	require.ErrorIs(t, err, session.ErrAlreadyRunning)

	ctrl.Cancel()
}
