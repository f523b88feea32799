package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// FileMedium is a Medium backed by a single file holding a fixed
// number of fixed-size slots back to back. Writes go through a
// sibling temp file that is renamed over the real one on Close, so a
// crash mid-write cannot leave a slot half-written.
type FileMedium struct {
	f     *os.File
	tmp   *os.File
	count int
}

// OpenFileMedium opens (or creates) path as a FileMedium with room for
// count slots. An existing file shorter than count slots is treated
// as freshly created: missing slots simply read back ErrBadMagic until
// written.
func OpenFileMedium(path string, count int) (*FileMedium, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}

	tmpPath := path + ".tmp"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("storage: create %s: %w", tmpPath, err)
	}

	want := int64(count) * slotSize
	if err := tmp.Truncate(want); err != nil {
		f.Close()
		tmp.Close()
		return nil, err
	}
	buf := make([]byte, want)
	if _, err := f.ReadAt(buf, 0); err != nil && !errors.Is(err, io.EOF) {
		f.Close()
		tmp.Close()
		return nil, fmt.Errorf("storage: read existing slots: %w", err)
	}
	if _, err := tmp.WriteAt(buf, 0); err != nil {
		f.Close()
		tmp.Close()
		return nil, err
	}

	return &FileMedium{f: f, tmp: tmp, count: count}, nil
}

func (m *FileMedium) SlotCount() int { return m.count }

func (m *FileMedium) ReadSlot(index int) (Slot, error) {
	if index < 0 || index >= m.count {
		return Slot{}, ErrSlotOutOfRange
	}
	var raw [slotSize]byte
	if _, err := m.tmp.ReadAt(raw[:], int64(index)*slotSize); err != nil {
		return Slot{}, fmt.Errorf("storage: read slot %d: %w", index, err)
	}
	return Unmarshal(raw)
}

func (m *FileMedium) WriteSlot(index int, slot Slot) error {
	if index < 0 || index >= m.count {
		return ErrSlotOutOfRange
	}
	raw := slot.Marshal()
	_, err := m.tmp.WriteAt(raw[:], int64(index)*slotSize)
	return err
}

// Close flushes every slot to the real backing file by renaming the
// temp file over it, then closes both handles.
func (m *FileMedium) Close() error {
	if err := m.tmp.Close(); err != nil {
		return err
	}
	if err := m.f.Close(); err != nil {
		return err
	}
	return os.Rename(m.tmp.Name(), m.f.Name())
}
