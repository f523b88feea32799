package main

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/pkmntrade/gbtrade/internal/codec"
	"github.com/pkmntrade/gbtrade/internal/species"
	"github.com/pkmntrade/gbtrade/internal/storage"
)

type setSendCommand struct {
	StoragePath string `long:"storage" description:"Path to the slot-backed storage file" default:"gbtrade.slots"`
	Slot        int    `long:"slot" description:"Storage slot index to write" default:"0"`
	SlotCount   int    `long:"slot-count" description:"Number of slots the storage file holds" default:"4"`
	Species     int    `long:"species" description:"Internal Gen I species index" required:"true"`
	Level       int    `long:"level" description:"Level, 1-100" required:"true"`
	OTName      string `long:"ot" description:"Original trainer name" default:"TRAINER"`
	Nickname    string `long:"nickname" description:"Pokémon nickname"`
}

func (c *setSendCommand) Execute(args []string) error {
	configureLogging(globals.Verbose)

	if c.Species < 1 || c.Species > 255 {
		return fmt.Errorf("species must be in [1,255], got %d", c.Species)
	}
	if c.Level < 1 || c.Level > 100 {
		return fmt.Errorf("level must be in [1,100], got %d", c.Level)
	}
	nickname := c.Nickname
	if nickname == "" {
		nickname = species.Name(uint8(c.Species))
	}

	var rec codec.Record
	rec.Species = uint8(c.Species)
	rec.Level = uint8(c.Level)
	rec.CurrentHP = 100 * uint16(c.Level) / 50 // a plausible placeholder, not a real stat formula
	rec.Stats = [5]uint16{rec.CurrentHP, rec.CurrentHP, rec.CurrentHP, rec.CurrentHP, rec.CurrentHP}
	copy(rec.OTName[:], c.OTName)
	copy(rec.Nickname[:], nickname)

	if !rec.IsValid() {
		return fmt.Errorf("constructed record fails validation")
	}

	medium, err := storage.OpenFileMedium(c.StoragePath, c.SlotCount)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer medium.Close()

	slot := storage.NewSlot(rec.MarshalStorage(), time.Now().Unix())
	if err := medium.WriteSlot(c.Slot, slot); err != nil {
		return fmt.Errorf("write slot %d: %w", c.Slot, err)
	}

	fmt.Printf("slot %d set: %s (species %d) Lv.%d, OT %s\n",
		c.Slot, nickname, c.Species, c.Level, c.OTName)
	return nil
}

func addSetSendCommand(parser *flags.Parser) {
	_, err := parser.AddCommand("set-send",
		"Configure the Pokémon this gadget offers",
		"Writes a Pokémon record into the configured send slot, so the next\n"+
			"run command has something to offer the other side of the trade.",
		&setSendCommand{})
	if err != nil {
		panic(err)
	}
}

type showSendCommand struct {
	StoragePath string `long:"storage" description:"Path to the slot-backed storage file" default:"gbtrade.slots"`
	Slot        int    `long:"slot" description:"Storage slot index to read" default:"0"`
	SlotCount   int    `long:"slot-count" description:"Number of slots the storage file holds" default:"4"`
}

func (c *showSendCommand) Execute(args []string) error {
	configureLogging(globals.Verbose)

	medium, err := storage.OpenFileMedium(c.StoragePath, c.SlotCount)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer medium.Close()

	slot, err := medium.ReadSlot(c.Slot)
	if err != nil {
		return fmt.Errorf("slot %d: %w", c.Slot, err)
	}
	rec := codec.UnmarshalRecord(slot.Payload)

	fmt.Printf("slot %d: %s (%s), Lv.%d, OT %s, stamped %s\n",
		c.Slot,
		trimNull(string(rec.Nickname[:])),
		species.Name(rec.Species),
		rec.Level,
		trimNull(string(rec.OTName[:])),
		time.Unix(slot.Timestamp, 0).Format(time.RFC3339))
	return nil
}

func addShowSendCommand(parser *flags.Parser) {
	_, err := parser.AddCommand("show-send",
		"Display the currently configured send slot",
		"Reads back and decodes the Pokémon record stored in the configured\n"+
			"send slot, for a quick sanity check before running a trade.",
		&showSendCommand{})
	if err != nil {
		panic(err)
	}
}

func trimNull(s string) string {
	for i, r := range s {
		if r == 0 || r == 0x50 {
			return s[:i]
		}
	}
	return s
}
