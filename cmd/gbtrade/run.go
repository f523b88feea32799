package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/pkmntrade/gbtrade/internal/bel"
	"github.com/pkmntrade/gbtrade/internal/storage"
	"github.com/pkmntrade/gbtrade/internal/trade"
	"github.com/pkmntrade/gbtrade/pkg/log"
	"github.com/pkmntrade/gbtrade/pkg/session"
	"github.com/pkmntrade/gbtrade/pkg/status"
)

type runCommand struct {
	StoragePath string `long:"storage" description:"Path to the slot-backed storage file" default:"gbtrade.slots"`
	SendSlot    int    `long:"send-slot" description:"Storage slot index to send from" default:"0"`
	ReceiveSlot int    `long:"receive-slot" description:"Storage slot index to persist the received Pokémon into (defaults to --send-slot)" default:"-1"`
	SlotCount   int    `long:"slot-count" description:"Number of slots the storage file holds" default:"4"`
	Simulate    string `long:"simulate" description:"Hex-encoded byte trace to feed a simulated peer transport instead of real hardware"`
	StatusAddr  string `long:"status-addr" description:"If set, serve live status snapshots over a websocket at this address (e.g. :8090)"`
}

func (c *runCommand) Execute(args []string) error {
	configureLogging(globals.Verbose)

	medium, err := storage.OpenFileMedium(c.StoragePath, c.SlotCount)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer medium.Close()

	var transport bel.Transport
	if c.Simulate != "" {
		trace, err := hex.DecodeString(c.Simulate)
		if err != nil {
			return fmt.Errorf("decode --simulate trace: %w", err)
		}
		log.Info("gbtrade: running against a simulated peer", log.F("bytes", len(trace)))
		transport = bel.NewFakeTransport(trace...)
	} else {
		return fmt.Errorf("run: no hardware transport wired in this build; pass --simulate for a dry run")
	}

	var bcast *status.Broadcaster
	if c.StatusAddr != "" {
		bcast = status.NewBroadcaster()
		stop := make(chan struct{})
		go bcast.Run(stop)
		defer close(stop)

		mux := http.NewServeMux()
		mux.HandleFunc("/status", bcast.ServeHTTP)
		srv := &http.Server{Addr: c.StatusAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("gbtrade: status server exited", log.F("error", err))
			}
		}()
		defer srv.Close()
		log.Info("gbtrade: status server listening", log.F("addr", c.StatusAddr))
	}

	receiveSlot := c.ReceiveSlot
	if receiveSlot < 0 {
		receiveSlot = c.SendSlot
	}
	ctrl := session.NewController(trade.DefaultConfig(), medium, c.SendSlot, receiveSlot, transport, bcast)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Warn("gbtrade: interrupt received, cancelling session")
		ctrl.Cancel()
	}()

	start := time.Now()
	outcome, err := ctrl.Run(ctx)
	log.Info("gbtrade: session finished",
		log.F("outcome", outcome.String()),
		log.F("duration_ms", time.Since(start).Milliseconds()))
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func addRunCommand(parser *flags.Parser) {
	_, err := parser.AddCommand("run",
		"Run one trade session",
		"Loads the configured send slot, runs the Trade Center protocol to\n"+
			"completion over the configured transport, and persists whatever\n"+
			"Pokémon is received into the receive slot (the send slot unless\n"+
			"--receive-slot is given).",
		&runCommand{})
	if err != nil {
		panic(err)
	}
}
