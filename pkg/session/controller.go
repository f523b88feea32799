// Package session wires the byte exchange layer, the party codec, and
// the trade protocol engine into a single runnable trade session: load
// the send slot, run the wire protocol to completion, persist the
// received Pokémon, and report the outcome. A small interface a caller
// drives and observes without reaching into the engine's internals.
package session

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash"

	"github.com/pkmntrade/gbtrade/internal/bel"
	"github.com/pkmntrade/gbtrade/internal/codec"
	"github.com/pkmntrade/gbtrade/internal/species"
	"github.com/pkmntrade/gbtrade/internal/storage"
	"github.com/pkmntrade/gbtrade/internal/trade"
	"github.com/pkmntrade/gbtrade/pkg/log"
	"github.com/pkmntrade/gbtrade/pkg/status"
)

// Controller runs one trade session end to end against a storage
// medium and a byte transport: load send slot, build the outbound
// block, run BEL<->TPE until termination, persist the received record
// on success, report the outcome.
type Controller struct {
	cfg         trade.Config
	medium      storage.Medium
	sendSlot    int
	receiveSlot int
	transport   bel.Transport
	bcast       *status.Broadcaster

	mu        sync.Mutex
	sessionID string
	running   bool
	cancel    context.CancelFunc
	current   status.Status
}

// NewController builds a Controller that offers the record held in
// sendSlot of medium and, on a successful trade, persists the
// received Pokémon into receiveSlot (the two may be the same index,
// the common single-slot case, or distinct ones). bcast may be nil,
// in which case status snapshots are only available via Snapshot.
func NewController(cfg trade.Config, medium storage.Medium, sendSlot, receiveSlot int, transport bel.Transport, bcast *status.Broadcaster) *Controller {
	return &Controller{
		cfg:         cfg,
		medium:      medium,
		sendSlot:    sendSlot,
		receiveSlot: receiveSlot,
		transport:   transport,
		bcast:       bcast,
	}
}

// Cancel requests the in-flight Run to stop at its next BEL suspension
// boundary. A no-op if no Run is in flight.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

// Snapshot returns the most recently observed Status, safe to call
// from any goroutine while Run is in flight or after it returns.
func (c *Controller) Snapshot() status.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Run drives one full trade session to completion. It blocks until
// the session reaches a terminal outcome or ctx is cancelled.
func (c *Controller) Run(ctx context.Context) (status.Outcome, error) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return status.OutcomeFailed, ErrAlreadyRunning
	}
	c.running = true
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.sessionID = newSessionID()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.running = false
		c.cancel = nil
		c.mu.Unlock()
		cancel()
	}()

	sendRecord, err := c.loadSendRecord()
	if err != nil {
		c.publish("", 0, "", status.OutcomeFailed, err)
		return status.OutcomeFailed, err
	}

	outBlock, outPatch, err := codec.EncodePartyOutbound(codec.BuildPartyFromRecord(sendRecord))
	if err != nil {
		wrapped := fmt.Errorf("session: encode outbound party block: %w", err)
		c.publish("", 0, "", status.OutcomeFailed, wrapped)
		return status.OutcomeFailed, wrapped
	}

	engine := trade.NewEngine(c.cfg, outBlock, outPatch)
	ctrl := bel.NewController(c.transport)

	outcome, err := c.drive(runCtx, ctrl, engine)
	return outcome, err
}

// drive runs the BEL<->TPE exchange loop until a terminal event or
// error, persisting the received record on success.
func (c *Controller) drive(ctx context.Context, ctrl *bel.Controller, engine *trade.Engine) (status.Outcome, error) {
	out := trade.Slave // the session's first outbound byte is always SLAVE.
	retries := 0

	for {
		timeout := c.timeoutFor(engine.Phase())
		in, err := ctrl.Exchange(ctx, out, timeout)
		if err != nil {
			if errors.Is(err, bel.ErrCancelled) {
				c.publish(engine.Phase().String(), engine.BytesExchangedInPhase(), "", status.OutcomeCancelled, err)
				return status.OutcomeCancelled, nil
			}
			if errors.Is(err, bel.ErrTimeout) && engine.Phase() == trade.PhaseCleanup {
				engine.FinishCleanup()
				c.publish(engine.Phase().String(), 0, "", status.OutcomeSuccess, nil)
				return status.OutcomeSuccess, nil
			}
			if errors.Is(err, bel.ErrTimeout) {
				if engine.Phase() < trade.PhaseTradeData && retries < c.cfg.LinkRetryBudget {
					retries++
					log.Debug("session: recoverable link timeout", log.F("phase", engine.Phase().String()), log.F("retry", retries))
					continue
				}
				if engine.Phase() >= trade.PhaseTradeData {
					err = fmt.Errorf("session: %w: %w", trade.ErrLinkTimeout, err)
				}
			}
			c.publish(engine.Phase().String(), engine.BytesExchangedInPhase(), "", status.OutcomeFailed, err)
			return status.OutcomeFailed, err
		}

		var event trade.Event
		out, event, err = engine.Step(in)
		if err != nil {
			c.publish(engine.Phase().String(), engine.BytesExchangedInPhase(), "", status.OutcomeFailed, err)
			return status.OutcomeFailed, err
		}

		c.publish(engine.Phase().String(), engine.BytesExchangedInPhase(), "", status.OutcomeNone, nil)

		switch event {
		case trade.EventTradeComplete:
			received := engine.Received()
			if err := c.persistReceived(received); err != nil {
				log.Error("session: persist received record failed", log.F("error", err))
				c.publish(engine.Phase().String(), 0, "", status.OutcomeFailed, err)
				return status.OutcomeFailed, err
			}
			name := receivedSpeciesName(received)
			c.publish(engine.Phase().String(), 0, name, status.OutcomeSuccess, nil)
			return status.OutcomeSuccess, nil
		case trade.EventTradeCancelled:
			c.publish(engine.Phase().String(), 0, "", status.OutcomeCancelled, nil)
			return status.OutcomeCancelled, nil
		case trade.EventTradeFailed:
			c.publish(engine.Phase().String(), 0, "", status.OutcomeFailed, nil)
			return status.OutcomeFailed, nil
		}
	}
}

// timeoutFor returns the per-exchange deadline for phase: the
// ordinary per-byte budget before TradeData, the much longer clock
// stall tolerance from TradeData through Done, and, in Cleanup,
// CleanupIdleTimeout for the peer to go quiet before the session is
// considered fully wound down.
func (c *Controller) timeoutFor(phase trade.Phase) time.Duration {
	switch phase {
	case trade.PhaseTradeData, trade.PhasePatchHeader, trade.PhasePatchData,
		trade.PhaseSelection, trade.PhasePending, trade.PhaseConfirmation, trade.PhaseDone:
		return c.cfg.StallTolerance
	case trade.PhaseCleanup:
		return c.cfg.CleanupIdleTimeout
	default:
		return c.cfg.ByteTimeout
	}
}

func (c *Controller) loadSendRecord() (codec.Record, error) {
	slot, err := c.medium.ReadSlot(c.sendSlot)
	if err != nil {
		return codec.Record{}, fmt.Errorf("%w: %v", ErrNoSendRecord, err)
	}
	rec := codec.UnmarshalRecord(slot.Payload)
	if !rec.IsValid() {
		return codec.Record{}, ErrInvalidSendRecord
	}
	return rec, nil
}

// persistReceived overwrites the configured receive slot with the
// Pokémon the gadget just received.
func (c *Controller) persistReceived(pb codec.PartyBlock) error {
	rec, err := pb.ExtractRecord(0)
	if err != nil {
		return fmt.Errorf("session: no Pokémon in received slot 0: %w", err)
	}
	slot := storage.NewSlot(rec.MarshalStorage(), time.Now().Unix())
	return c.medium.WriteSlot(c.receiveSlot, slot)
}

func receivedSpeciesName(pb codec.PartyBlock) string {
	rec, err := pb.ExtractRecord(0)
	if err != nil {
		return ""
	}
	return species.Name(rec.Species)
}

func (c *Controller) publish(phase string, bytesInPhase int, receivedSpecies string, outcome status.Outcome, err error) {
	lastErr := ""
	if err != nil {
		lastErr = err.Error()
	}
	c.mu.Lock()
	s := status.New(c.sessionID, phase, bytesInPhase, receivedSpecies, outcome, lastErr)
	c.current = s
	c.mu.Unlock()

	if c.bcast != nil {
		c.bcast.Publish(s)
	}
}

// newSessionID stamps an opaque per-session correlation value so log
// lines and status snapshots from the same session can be tied
// together, independent of the wire protocol itself.
func newSessionID() string {
	var seed [8]byte
	binary.BigEndian.PutUint64(seed[:], uint64(time.Now().UnixNano()))
	return fmt.Sprintf("%016x", xxhash.Sum64(seed[:]))
}
