package engine

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// TickSeconds is the wall-clock length of one fixed tick.
	TickSeconds = 1.0 / 60.0
	// MaxFrameSeconds caps the elapsed time accepted per Advance call.
	MaxFrameSeconds = 0.1
)

// StepFunc advances a snapshot by one fixed tick. Step is the plain engine
// step; the game-flow layer wraps it with its own rules.
type StepFunc func(prev State, dt float64, cmd *Command) (State, error)

// Driver owns the current snapshot and the command queue and turns elapsed
// wall time into fixed ticks. Advance and Tick must be called from a single
// goroutine; Push and Snapshot are safe from any goroutine.
type Driver struct {
	mu    sync.RWMutex
	state State

	step   StepFunc
	queue  *CommandQueue
	acc    float64
	logger *log.Logger
}

// NewDriver creates a driver starting at initial. A nil step uses Step and a
// nil logger discards output.
func NewDriver(initial State, step StepFunc, queueSize int, logger *log.Logger) *Driver {
	if step == nil {
		step = Step
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Driver{
		state:  initial,
		step:   step,
		queue:  NewCommandQueue(queueSize),
		logger: logger,
	}
}

// Push enqueues a command for a later tick. It never blocks; a full queue
// drops the command and returns false.
func (d *Driver) Push(cmd Command) bool {
	if !d.queue.Push(cmd) {
		d.logger.Debug("command dropped", "kind", cmd.Kind, "queued", d.queue.Len())
		return false
	}
	return true
}

// Advance runs as many fixed ticks as the accumulated time allows.
// elapsed is clamped to MaxFrameSeconds so a stalled frame cannot trigger an
// unbounded catch-up. It returns the number of ticks committed; on a refused
// tick it stops and returns the error, keeping the last good snapshot.
func (d *Driver) Advance(elapsed time.Duration) (int, error) {
	secs := min(elapsed.Seconds(), MaxFrameSeconds)
	if secs > 0 {
		d.acc += secs
	}

	ticks := 0
	for d.acc >= TickSeconds {
		d.acc -= TickSeconds
		if err := d.Tick(); err != nil {
			d.acc = 0
			return ticks, err
		}
		ticks++
	}
	return ticks, nil
}

// Tick runs exactly one fixed tick, consuming at most one queued command.
func (d *Driver) Tick() error {
	var cmd *Command
	if c, ok := d.queue.Pop(); ok {
		cmd = &c
	}

	d.mu.RLock()
	prev := d.state
	d.mu.RUnlock()

	next, err := d.step(prev, NominalDT, cmd)
	if err != nil {
		d.logger.Warn("tick refused", "tick", prev.Tick, "err", err)
		return err
	}

	d.mu.Lock()
	d.state = next
	d.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the latest committed snapshot.
func (d *Driver) Snapshot() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state.Clone()
}

// Update replaces the snapshot with fn(current) between ticks. It is used for
// pause and restart, which are not simulation commands.
func (d *Driver) Update(fn func(State) State) {
	d.mu.Lock()
	d.state = fn(d.state.Clone())
	d.mu.Unlock()
}

// Reset installs a new snapshot and discards queued commands and leftover time.
func (d *Driver) Reset(s State) {
	d.queue.Drain()
	d.acc = 0
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

// queued returns the number of pending commands.
func (d *Driver) queued() int {
	return d.queue.Len()
}
