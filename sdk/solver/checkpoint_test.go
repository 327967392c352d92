package solver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// TestCheckpointRoundTripPreservesIterationAndRegrets is an
// integration-style check spanning training, serialization, and
// restore, so it leans on testify the way the broader round-trip and
// resume-flow tests do rather than hand-rolled comparisons.
func TestCheckpointRoundTripPreservesIterationAndRegrets(t *testing.T) {
	cfg := DefaultTrainingConfig()
	cfg.Iterations = 50
	trainer := testTrainer(t, cfg)
	require.NoError(t, trainer.Run(context.Background(), nil))

	path := filepath.Join(t.TempDir(), "checkpoint.json")
	require.NoError(t, trainer.SaveCheckpoint(path))

	restored, err := LoadCheckpoint(path)
	require.NoError(t, err)
	require.Equal(t, trainer.Iteration(), restored.Iteration())
	require.Equal(t, trainer.Table().Size(), restored.Table().Size())

	for key, entry := range trainer.Table().Entries() {
		restoredEntry, ok := restored.Table().Lookup(key)
		require.Truef(t, ok, "restored table missing info set %q", key)
		require.Equalf(t, entry.AverageStrategy(), restoredEntry.AverageStrategy(), "info set %q average strategy mismatch", key)
	}
}

func TestResumeTrainingContinuesIterationCount(t *testing.T) {
	cfg := DefaultTrainingConfig()
	cfg.Iterations = 50
	trainer := testTrainer(t, cfg)
	if err := trainer.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	path := filepath.Join(t.TempDir(), "checkpoint.json")
	if err := trainer.SaveCheckpoint(path); err != nil {
		t.Fatalf("SaveCheckpoint: %v", err)
	}

	resumed, err := LoadCheckpoint(path)
	if err != nil {
		t.Fatalf("LoadCheckpoint: %v", err)
	}
	resumed.cfg.Iterations = 100
	if err := resumed.Run(context.Background(), nil); err != nil {
		t.Fatalf("resumed Run: %v", err)
	}
	if resumed.Iteration() != 100 {
		t.Fatalf("resumed iteration = %d, want 100", resumed.Iteration())
	}
}

func TestWriteCheckpointDeletesPrevious(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultTrainingConfig()
	cfg.Iterations = 30
	cfg.CheckpointEvery = 10
	cfg.CheckpointDir = dir
	trainer, err := NewTrainer(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewTrainer: %v", err)
	}
	if err := trainer.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "checkpoint-*.json"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected exactly one surviving checkpoint, found %v", matches)
	}
}
