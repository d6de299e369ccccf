package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// ErrNoPlayer is returned when no playback command is configured or found.
var ErrNoPlayer = errors.New("no audio player available")

// Player plays a decoded buffer and returns once playback has finished.
type Player interface {
	Play(ctx context.Context, buf *Buffer) error
}

// CommandPlayer plays audio by writing a temporary WAV file and handing it to
// an external program (for example "ffplay -autoexit -nodisp" or "aplay").
type CommandPlayer struct {
	Command []string
	TempDir string
}

// NewCommandPlayer splits command on whitespace and checks the binary exists.
func NewCommandPlayer(command string) (*CommandPlayer, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, ErrNoPlayer
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoPlayer, fields[0], err)
	}
	return &CommandPlayer{Command: fields}, nil
}

func (p *CommandPlayer) Play(ctx context.Context, buf *Buffer) error {
	data, err := EncodeWAV(buf)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(p.TempDir, "neuropath-speech-*.wav")
	if err != nil {
		return fmt.Errorf("create temp wav: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp wav: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp wav: %w", err)
	}

	args := append(append([]string{}, p.Command[1:]...), path)
	cmd := exec.CommandContext(ctx, p.Command[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", p.Command[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Device is the process-wide playback resource. The underlying Player is
// created on first use and reused afterwards; a failed creation is retried
// on the next call.
type Device struct {
	mu      sync.Mutex
	factory func() (Player, error)
	player  Player
}

func NewDevice(factory func() (Player, error)) *Device {
	return &Device{factory: factory}
}

func (d *Device) get() (Player, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player != nil {
		return d.player, nil
	}
	if d.factory == nil {
		return nil, ErrNoPlayer
	}
	p, err := d.factory()
	if err != nil {
		return nil, err
	}
	d.player = p
	return p, nil
}

func (d *Device) Play(ctx context.Context, buf *Buffer) error {
	p, err := d.get()
	if err != nil {
		return err
	}
	return p.Play(ctx, buf)
}
