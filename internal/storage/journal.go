package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/tetris/machine"
)

// Journal records the events of one game as it is played.
type Journal struct {
	seed      int64
	generator string
	cfg       config.TetrisConfig
	events    []machine.Event
	started   time.Time
}

// NewJournal starts recording a game.
func NewJournal(seed int64, cfg config.TetrisConfig) *Journal {
	return &Journal{
		seed:      seed,
		generator: cfg.Queue.Generator,
		cfg:       cfg,
		started:   time.Now(),
	}
}

// Record appends an event. Pass it to machine.WithEventHook.
func (j *Journal) Record(ev machine.Event) {
	j.events = append(j.events, ev)
}

// Len returns the number of recorded events.
func (j *Journal) Len() int { return len(j.events) }

// Finish builds the replay for the game's final snapshot.
func (j *Journal) Finish(snap machine.Snapshot) Replay {
	return Replay{
		ReplaySummary: ReplaySummary{
			Seed:       j.seed,
			Generator:  j.generator,
			Score:      snap.Score,
			Level:      snap.Level,
			Lines:      snap.Lines,
			EventCount: len(j.events),
			Duration:   time.Since(j.started),
		},
		Config:     j.cfg,
		Events:     append([]machine.Event(nil), j.events...),
		FinalField: snap.Field.String(),
	}
}

// Simulate replays the recorded events on a fresh engine without real
// timers and returns the final snapshot.
func Simulate(r Replay) (machine.Snapshot, error) {
	gen, err := registry.Create(r.Generator, registry.Seeded(r.Seed))
	if err != nil {
		return machine.Snapshot{}, fmt.Errorf("storage: cannot replay: %w", err)
	}

	eng := engine.New(r.Config.Engine(), gen)
	m := machine.New(eng, &machine.NopTimers{}, r.Config.Machine())
	m.Start()
	for _, ev := range r.Events {
		m.Dispatch(ev)
	}
	return m.Snapshot(), nil
}

// Verify re-simulates r and reports whether it ends where it was recorded.
func Verify(r Replay) (machine.Snapshot, bool, error) {
	snap, err := Simulate(r)
	if err != nil {
		return snap, false, err
	}
	ok := snap.Score == r.Score && snap.Level == r.Level &&
		snap.Lines == r.Lines && snap.Field.String() == r.FinalField
	return snap, ok, nil
}
