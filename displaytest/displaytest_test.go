package displaytest

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/ssd1351/pixel"
)

func TestRecorder(t *testing.T) {
	r := new(Recorder)
	args := []byte{0x00, 0x7F}
	if err := r.Reset(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if err := r.Command(0x15, args...); err != nil {
		t.Fatal(err)
	}
	if err := r.Data(0xF8, 0x00); err != nil {
		t.Fatal(err)
	}
	args[1] = 0xFF

	if v := len(r.Ops); v != 3 {
		t.Fatalf("expected 3 operations, got %d", v)
	}
	if v := r.Ops[1]; v.Cmd != 0x15 || v.Bytes[1] != 0x7F {
		t.Errorf("expected recorded command to own its arguments, got %s", v)
	}
	if v := r.Count(Command); v != 1 {
		t.Errorf("expected 1 command, got %d", v)
	}
	if v := r.Commands(); string(v) != "\x15" {
		t.Errorf("expected commands [0x15], got % x", v)
	}
	if v := r.Payload(); string(v) != "\xF8\x00" {
		t.Errorf("expected payload f8 00, got % x", v)
	}

	r.Clear()
	if len(r.Ops) != 0 {
		t.Error("expected no operations after clear")
	}
	if err := r.Close(); err != nil || !r.Closed {
		t.Error("expected recorder to be closed")
	}
}

func TestRecorderFail(t *testing.T) {
	errBus := errors.New("bus error")

	r := new(Recorder)
	r.FailAfter(2, errBus)
	for i := 0; i < 2; i++ {
		if err := r.Data(byte(i)); err != nil {
			t.Fatalf("expected call %d to pass, got %v", i, err)
		}
	}
	if err := r.Command(0xAF); !errors.Is(err, errBus) {
		t.Errorf("expected %v, got %v", errBus, err)
	}
	if v := len(r.Ops); v != 2 {
		t.Errorf("expected failed call to not be recorded, got %d operations", v)
	}

	r = new(Recorder)
	r.FailOn(Data, errBus)
	if err := r.Command(0xAF); err != nil {
		t.Errorf("expected command to pass, got %v", err)
	}
	if err := r.Data(0x00); !errors.Is(err, errBus) {
		t.Errorf("expected %v, got %v", errBus, err)
	}
}

func TestPanel(t *testing.T) {
	p := NewPanel(4, 4)
	red := pixel.CRGB16{V: 0xF800}

	// Window (1,1)-(2,2), pixels split across data calls.
	mustCommand(t, p, setColumn, 1, 2)
	mustCommand(t, p, setRow, 1, 2)
	mustCommand(t, p, writeRAM)
	mustData(t, p, 0xF8)
	mustData(t, p, 0x00, 0xF8, 0x00, 0xF8)
	mustData(t, p, 0x00, 0xF8, 0x00)

	img := p.Image()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := pixel.CRGB16{}
			if x >= 1 && x <= 2 && y >= 1 && y <= 2 {
				want = red
			}
			if v := img.CRGB16At(x, y); v != want {
				t.Errorf("pixel (%d,%d) is %#04x, expected %#04x", x, y, v.V, want.V)
			}
		}
	}

	// Writing more than the window wraps to its origin.
	mustData(t, p, 0x00, 0x1F)
	if v := img.CRGB16At(1, 1); v.V != 0x001F {
		t.Errorf("expected wrap to the window origin, got %#04x", v.V)
	}

	// Data outside of a write is counted.
	mustCommand(t, p, 0xAF)
	mustData(t, p, 0x01, 0x02)
	if p.DataNotWriting != 2 {
		t.Errorf("expected 2 stray data bytes, got %d", p.DataNotWriting)
	}
}

func mustCommand(t *testing.T, p *Panel, cmd byte, args ...byte) {
	t.Helper()
	if err := p.Command(cmd, args...); err != nil {
		t.Fatal(err)
	}
}

func mustData(t *testing.T, p *Panel, data ...byte) {
	t.Helper()
	if err := p.Data(data...); err != nil {
		t.Fatal(err)
	}
}
