package solver

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lox/cfrsolver/internal/cfrgame"
	"github.com/lox/cfrsolver/internal/equity"
	"github.com/lox/cfrsolver/internal/games/kuhn"
	"github.com/lox/cfrsolver/internal/games/preflop"
	"github.com/lox/cfrsolver/internal/games/pushfold"
	"github.com/lox/cfrsolver/internal/vecf64"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

// Progress is emitted to the trainer's progress callback periodically
// during Run.
type Progress struct {
	Iteration int
	TableSize int
	Elapsed   time.Duration
}

// Trainer drives CFR+ training to convergence over one game instance.
type Trainer struct {
	cfg       TrainingConfig
	root      cfrgame.Node
	table     *Table
	iteration atomic.Int64
	log       zerolog.Logger
	clock     quartz.Clock

	checkpointDir   string
	checkpointEvery int
	lastCheckpoint  string
}

// NewTrainer constructs a Trainer for cfg's game, loading the equity
// table from disk when the game requires one.
func NewTrainer(cfg TrainingConfig, log zerolog.Logger) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid training config: %w", err)
	}

	root, err := buildRoot(cfg)
	if err != nil {
		return nil, err
	}

	return &Trainer{
		cfg:             cfg,
		root:            root,
		table:           NewTable(),
		log:             log,
		clock:           quartz.NewReal(),
		checkpointDir:   cfg.CheckpointDir,
		checkpointEvery: cfg.CheckpointEvery,
	}, nil
}

// WithClock overrides the trainer's clock, used by tests that need
// deterministic control over Progress.Elapsed.
func (t *Trainer) WithClock(clock quartz.Clock) *Trainer {
	t.clock = clock
	return t
}

// SetLogger attaches a logger, used after resuming from a checkpoint
// since LoadCheckpoint has no caller-supplied logger to install.
func (t *Trainer) SetLogger(log zerolog.Logger) {
	t.log = log
}

func buildRoot(cfg TrainingConfig) (cfrgame.Node, error) {
	switch cfg.Game {
	case GameKuhn:
		return kuhn.New(), nil
	case GamePushFold:
		table, err := equity.LoadCached(cfg.EquityTablePath)
		if err != nil {
			return nil, fmt.Errorf("load equity table: %w", err)
		}
		return pushfold.New(cfg.EffStack, table), nil
	case GamePreflop:
		table, err := equity.LoadCached(cfg.EquityTablePath)
		if err != nil {
			return nil, fmt.Errorf("load equity table: %w", err)
		}
		return preflop.New(cfg.EffStack, table), nil
	default:
		return nil, fmt.Errorf("unknown game %q", cfg.Game)
	}
}

// Root returns the game's root node.
func (t *Trainer) Root() cfrgame.Node {
	return t.root
}

// Table exposes the accumulator table, primarily for tests and the
// checkpoint summarizer.
func (t *Trainer) Table() *Table {
	return t.table
}

// Iteration returns the number of completed iterations.
func (t *Trainer) Iteration() int {
	return int(t.iteration.Load())
}

// SetTotalIterations changes the target iteration count Run trains
// towards, used when resuming a checkpoint to a new total. It is a
// no-op if total is not past the iterations already completed.
func (t *Trainer) SetTotalIterations(total int) {
	if total > int(t.iteration.Load()) {
		t.cfg.Iterations = total
	}
}

// EnableCheckpoints overrides the checkpoint directory and interval,
// used when resuming a run with new checkpoint parameters.
func (t *Trainer) EnableCheckpoints(dir string, every int) {
	t.checkpointDir = dir
	t.checkpointEvery = every
	t.cfg.CheckpointDir = dir
	t.cfg.CheckpointEvery = every
}

// SetProgressEvery overrides the progress reporting interval.
func (t *Trainer) SetProgressEvery(every int) {
	t.cfg.ProgressEvery = every
}

// Run trains until cfg.Iterations iterations have completed in total,
// continuing from Iteration() (non-zero after a resume), alternating
// which player's regrets are updated each pass, reporting progress and
// writing checkpoints along the way.
func (t *Trainer) Run(ctx context.Context, progress func(Progress)) error {
	hands := t.root.PrivateInfoSetLen()
	progressEvery := t.cfg.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = max(t.cfg.Iterations/100, 1)
	}

	start := t.clock.Now()
	for i := int(t.iteration.Load()) + 1; i <= t.cfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for player := 0; player < 2; player++ {
			ones := vecf64.Ones(hands)
			CFR(t.table, t.root, i, player, ones, ones)
		}
		t.iteration.Store(int64(i))

		if t.checkpointEvery > 0 && i%t.checkpointEvery == 0 {
			if err := t.writeCheckpoint(i); err != nil {
				return err
			}
		}

		if progress != nil && i%progressEvery == 0 {
			progress(Progress{Iteration: i, TableSize: t.table.Size(), Elapsed: t.clock.Now().Sub(start)})
			t.log.Debug().Int("iteration", i).Int("infosets", t.table.Size()).Msg("training progress")
		}
	}

	if t.checkpointEvery > 0 {
		if err := t.writeCheckpoint(int(t.iteration.Load())); err != nil {
			return err
		}
	}
	return nil
}

// Blueprint materialises the current average strategy, expected
// value, and exploitability into a durable Blueprint.
func (t *Trainer) Blueprint() *Blueprint {
	avg := ComputeAverage(t.table)
	hands := t.root.PrivateInfoSetLen()
	ones := vecf64.Ones(hands)
	ev0 := ComputeEV(t.root, 0, ones, ones, avg)
	exploit := Exploitability(t.root, avg)

	return &Blueprint{
		Version:        blueprintFileVersion,
		GeneratedAt:    t.clock.Now().UTC(),
		Game:           t.cfg.Game,
		Iterations:     int(t.iteration.Load()),
		EffStack:       t.cfg.EffStack,
		EVPlayerZero:   ev0,
		Exploitability: exploit,
		Strategies:     avg,
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
