package bind_group_provider

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProvider is returned by BufferWrite.Validate for a write without a target provider.
	ErrNoProvider = errors.New("bind_group_provider: buffer write has no provider")

	// ErrEmptyWrite is returned by BufferWrite.Validate for a write carrying no bytes.
	ErrEmptyWrite = errors.New("bind_group_provider: buffer write has no data")
)

// BufferWrite is one queued upload: Data lands in the buffer at Binding of Provider, starting
// at byte Offset. The scene batches a frame's camera, light and per-entry writes into one slice.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Validate reports whether the write can be handed to the GPU queue.
func (w BufferWrite) Validate() error {
	if w.Provider == nil {
		return ErrNoProvider
	}
	if len(w.Data) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyWrite, w)
	}
	return nil
}

// String formats the write as label@group/binding+offset:bytes for logs.
func (w BufferWrite) String() string {
	if w.Provider == nil {
		return fmt.Sprintf("<nil>/%d+%d:%dB", w.Binding, w.Offset, len(w.Data))
	}
	return fmt.Sprintf("%s@%d/%d+%d:%dB", w.Provider.Label(), w.Provider.Group(), w.Binding, w.Offset, len(w.Data))
}
