// Package displaytest provides in-memory connections for testing display code
// without hardware.
//
// [Recorder] logs every transport call. [Panel] additionally decodes the
// SSD1351 addressing protocol and keeps the resulting panel memory, so tests
// can compare what reached the glass with what the driver believes is there.
package displaytest

import (
	"bytes"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// Kind of transport operation.
type Kind int

// Operation kinds.
const (
	Command Kind = iota
	Data
	Reset
)

func (k Kind) String() string {
	switch k {
	case Command:
		return "command"
	case Data:
		return "data"
	case Reset:
		return "reset"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Op is one recorded transport call.
type Op struct {
	Kind Kind

	// Cmd is the command byte, for Command.
	Cmd byte

	// Bytes are the command arguments or data bytes.
	Bytes []byte

	// Level is the reset line level, for Reset.
	Level gpio.Level
}

func (op Op) String() string {
	switch op.Kind {
	case Command:
		return fmt.Sprintf("command %#02x % x", op.Cmd, op.Bytes)
	case Data:
		return fmt.Sprintf("data (%d bytes)", len(op.Bytes))
	case Reset:
		return fmt.Sprintf("reset %s", op.Level)
	default:
		return op.Kind.String()
	}
}

// Recorder is a connection that records all operations.
//
// Fail, if set, is consulted before every operation; a non-nil error is
// returned to the caller and the operation is not recorded.
type Recorder struct {
	mu     sync.Mutex
	Ops    []Op
	Fail   func(Op) error
	Closed bool
}

func (r *Recorder) String() string {
	return "recorder"
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Closed = true
	return nil
}

func (r *Recorder) Reset(level gpio.Level) error {
	return r.record(Op{Kind: Reset, Level: level})
}

func (r *Recorder) Command(cmd byte, args ...byte) error {
	return r.record(Op{Kind: Command, Cmd: cmd, Bytes: bytes.Clone(args)})
}

func (r *Recorder) Data(data ...byte) error {
	return r.record(Op{Kind: Data, Bytes: bytes.Clone(data)})
}

func (r *Recorder) record(op Op) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		if err := r.Fail(op); err != nil {
			return err
		}
	}
	r.Ops = append(r.Ops, op)
	return nil
}

// Clear forgets all recorded operations.
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.Ops = r.Ops[:0]
	r.mu.Unlock()
}

// Count returns the number of recorded operations of the given kind.
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Commands returns the recorded command bytes in order.
func (r *Recorder) Commands() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []byte
	for _, op := range r.Ops {
		if op.Kind == Command {
			out = append(out, op.Cmd)
		}
	}
	return out
}

// Payload returns all recorded data bytes concatenated.
func (r *Recorder) Payload() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []byte
	for _, op := range r.Ops {
		if op.Kind == Data {
			out = append(out, op.Bytes...)
		}
	}
	return out
}

// FailAfter makes every operation after the first n fail with err.
func (r *Recorder) FailAfter(n int, err error) {
	var seen int
	r.Fail = func(Op) error {
		if seen >= n {
			return err
		}
		seen++
		return nil
	}
}

// FailOn makes every operation of the given kind fail with err.
func (r *Recorder) FailOn(kind Kind, err error) {
	r.Fail = func(op Op) error {
		if op.Kind == kind {
			return err
		}
		return nil
	}
}
