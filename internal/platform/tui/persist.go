package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-comet/internal/game"
	"github.com/vovakirdan/tui-comet/internal/replay"
	"github.com/vovakirdan/tui-comet/internal/storage"
)

// SaveRun stores a finished run: its encoded replay first, then the score
// row pointing at it. Returns the replay ID.
func SaveRun(store *storage.Store, g *game.Game) (int64, error) {
	run, err := g.Recording()
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	data, err := replay.Encode(run)
	if err != nil {
		return 0, err
	}

	replayID, err := store.SaveReplay(storage.ReplayRecord{
		LevelID: run.LevelID,
		Score:   run.FinalScore,
		Ticks:   run.Ticks,
		Data:    data,
	})
	if err != nil {
		return 0, err
	}

	if _, err := store.SaveScore(storage.ScoreEntry{
		LevelID:  run.LevelID,
		Score:    run.FinalScore,
		Ticks:    run.Ticks,
		Outcome:  run.Phase,
		ReplayID: replayID,
	}); err != nil {
		return replayID, err
	}
	return replayID, nil
}
