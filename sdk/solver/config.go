package solver

import "errors"

// Game selects which game instance a Trainer solves.
type Game string

const (
	GameKuhn     Game = "kuhn"
	GamePushFold Game = "pushfold"
	GamePreflop  Game = "preflop"
)

func (g Game) Valid() bool {
	switch g {
	case GameKuhn, GamePushFold, GamePreflop:
		return true
	default:
		return false
	}
}

// TrainingConfig aggregates the parameters that control a CFR+ run.
type TrainingConfig struct {
	Game Game `json:"game"`

	// Iterations is the total number of training iterations to run.
	Iterations int `json:"iterations"`

	// EffStack is the effective stack depth in big blinds. Ignored for
	// Kuhn, where the game has no stack parameter.
	EffStack float64 `json:"eff_stack"`

	// EquityTablePath locates the heads-up pre-flop equity table.
	// Required for pushfold and preflop, ignored for Kuhn.
	EquityTablePath string `json:"equity_table_path"`

	// CheckpointEvery is the iteration interval at which a checkpoint
	// is written and the previous one discarded. Zero disables
	// checkpointing.
	CheckpointEvery int `json:"checkpoint_every"`

	// CheckpointDir is the directory checkpoints are written into.
	CheckpointDir string `json:"checkpoint_dir"`

	// ProgressEvery is the iteration interval at which progress
	// callbacks fire. Zero uses a 1%-of-total default.
	ProgressEvery int `json:"progress_every"`
}

// Validate ensures the training parameters are safe to use.
func (c TrainingConfig) Validate() error {
	if !c.Game.Valid() {
		return errors.New("unknown game")
	}
	if c.Iterations <= 0 {
		return errors.New("iterations must be > 0")
	}
	if c.Game != GameKuhn {
		if c.EffStack <= 0 {
			return errors.New("effective stack must be > 0")
		}
		if c.EquityTablePath == "" {
			return errors.New("equity table path is required for pushfold and preflop")
		}
	}
	if c.CheckpointEvery < 0 {
		return errors.New("checkpoint interval cannot be negative")
	}
	if c.ProgressEvery < 0 {
		return errors.New("progress interval cannot be negative")
	}
	return nil
}

// DefaultTrainingConfig returns a minimal Kuhn configuration suitable
// for smoke tests; the equity-dependent games need EffStack and
// EquityTablePath filled in by the caller.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Game:            GameKuhn,
		Iterations:      1000,
		CheckpointEvery: 0,
		ProgressEvery:   0,
	}
}
