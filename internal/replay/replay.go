// Package replay records the inputs of a finished run so it can be stored
// and re-simulated. Runs are encoded with msgpack.
package replay

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-comet/internal/core"
	"github.com/vovakirdan/tui-comet/internal/engine"
)

// Version is bumped whenever the encoded layout changes.
const Version = 1

// Entry is one command applied at a given tick.
type Entry struct {
	Tick   uint64  `msgpack:"t"`
	Kind   string  `msgpack:"k"`
	DeltaX float64 `msgpack:"dx"`
}

// Command converts the entry back into an engine command.
func (e Entry) Command() engine.Command {
	return engine.Command{Kind: engine.CommandKind(e.Kind), DeltaX: e.DeltaX}
}

// Brick is a layout brick in wire form.
type Brick struct {
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	W     float64 `msgpack:"w"`
	H     float64 `msgpack:"h"`
	Color uint8   `msgpack:"c"`
}

// Run is a self-contained recording: the level layout, the game-flow config,
// the RNG seed and every accepted command.
type Run struct {
	Version    int     `msgpack:"v"`
	LevelIndex int     `msgpack:"level_index"`
	LevelID    string  `msgpack:"level_id"`
	LevelName  string  `msgpack:"level_name"`
	Layout     []Brick `msgpack:"layout"`
	Config     []byte  `msgpack:"config"` // YAML-encoded game config
	Seed       int64   `msgpack:"seed"`
	Entries    []Entry `msgpack:"entries"`

	// Outcome, checked when the run is replayed.
	Ticks      uint64 `msgpack:"ticks"`
	FinalScore int    `msgpack:"score"`
	Phase      string `msgpack:"phase"`
}

// Level rebuilds the recorded level descriptor.
func (r Run) Level() engine.Level {
	lvl := engine.Level{ID: r.LevelID, Name: r.LevelName, Bricks: make([]engine.Brick, len(r.Layout))}
	for i, b := range r.Layout {
		lvl.Bricks[i] = engine.Brick{X: b.X, Y: b.Y, W: b.W, H: b.H, Color: core.Color(b.Color), Alive: true}
	}
	return lvl
}

// LayoutOf converts an engine layout to wire form.
func LayoutOf(bricks []engine.Brick) []Brick {
	out := make([]Brick, len(bricks))
	for i, b := range bricks {
		out[i] = Brick{X: b.X, Y: b.Y, W: b.W, H: b.H, Color: uint8(b.Color)}
	}
	return out
}

// Recorder collects entries while a run is played.
type Recorder struct {
	entries []Entry
}

// Record appends cmd as applied on tick.
func (r *Recorder) Record(tick uint64, cmd engine.Command) {
	r.entries = append(r.entries, Entry{Tick: tick, Kind: string(cmd.Kind), DeltaX: cmd.DeltaX})
}

// Entries returns a copy of the recorded entries.
func (r *Recorder) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.entries)
}

// Reset forgets all entries.
func (r *Recorder) Reset() {
	r.entries = r.entries[:0]
}

// Encode serializes a run.
func Encode(r Run) ([]byte, error) {
	r.Version = Version
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.UseCompactInts(true)
	if err := enc.Encode(&r); err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses an encoded run and checks its version and command order.
func Decode(data []byte) (Run, error) {
	var r Run
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return Run{}, fmt.Errorf("replay: decode: %w", err)
	}
	if r.Version != Version {
		return Run{}, fmt.Errorf("replay: unsupported version %d", r.Version)
	}
	for i := 1; i < len(r.Entries); i++ {
		if r.Entries[i].Tick <= r.Entries[i-1].Tick {
			return Run{}, fmt.Errorf("replay: entry %d out of order (tick %d after %d)", i, r.Entries[i].Tick, r.Entries[i-1].Tick)
		}
	}
	return r, nil
}
