package solver

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lox/cfrsolver/internal/equity"
	"github.com/lox/cfrsolver/internal/fileutil"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

const checkpointFileVersion = 1

// entrySnapshot is the JSON-serializable form of an Entry, used both
// for the on-disk checkpoint and for resuming training.
type entrySnapshot struct {
	Actions int         `json:"actions"`
	Hands   int         `json:"hands"`
	CumCFR  [][]float64 `json:"cum_cfr"`
	CumSGM  [][]float64 `json:"cum_sgm"`
}

// checkpointFile is the full on-disk checkpoint: enough state to
// resume training (Entries, Iteration, Config) plus a human-facing
// summary (SummarizedStrategy, EV, Exploitability). The viewer reads
// blueprints, not checkpoints.
type checkpointFile struct {
	Version            int                      `json:"version"`
	Config             TrainingConfig           `json:"config"`
	Iteration          int                      `json:"iteration"`
	Entries            map[string]entrySnapshot `json:"entries"`
	SummarizedStrategy map[string][13][13]Cell  `json:"summarized_strategy,omitempty"`
	EV                 float64                  `json:"ev"`
	Exploitability     float64                  `json:"exploitability"`
}

// writeCheckpoint serializes the trainer's current state to
// <CheckpointDir>/checkpoint-<iter>.json, atomically via a
// temp-file-then-rename, then removes the previous checkpoint so only
// one survives at a time.
func (t *Trainer) writeCheckpoint(iter int) error {
	if t.checkpointDir == "" {
		return nil
	}
	if err := os.MkdirAll(t.checkpointDir, 0o755); err != nil {
		return fmt.Errorf("create checkpoint dir: %w", err)
	}

	path := filepath.Join(t.checkpointDir, fmt.Sprintf("checkpoint-%08d.json", iter))
	if err := t.saveCheckpointTo(path); err != nil {
		return err
	}

	if t.lastCheckpoint != "" && t.lastCheckpoint != path {
		_ = os.Remove(t.lastCheckpoint)
	}
	t.lastCheckpoint = path
	return nil
}

func (t *Trainer) saveCheckpointTo(path string) error {
	entries := make(map[string]entrySnapshot)
	for key, entry := range t.table.Entries() {
		entries[key] = entry.snapshot()
	}

	avg := ComputeAverage(t.table)
	hands := t.root.PrivateInfoSetLen()
	var summarized map[string][13][13]Cell
	if hands == equity.NumHands {
		summarized = make(map[string][13][13]Cell, len(avg))
		for key, sigma := range avg {
			summarized[key] = Summarize(sigma)
		}
	}

	ones := make([]float64, hands)
	for i := range ones {
		ones[i] = 1
	}
	ev := ComputeEV(t.root, 0, ones, ones, avg)
	exploit := Exploitability(t.root, avg)

	file := checkpointFile{
		Version:            checkpointFileVersion,
		Config:             t.cfg,
		Iteration:          int(t.iteration.Load()),
		Entries:            entries,
		SummarizedStrategy: summarized,
		EV:                 ev,
		Exploitability:     exploit,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("persist checkpoint: %w", err)
	}
	return nil
}

// SaveCheckpoint writes a one-off checkpoint to an exact path,
// bypassing the rolling every-N-iterations naming scheme. Used by
// tests.
func (t *Trainer) SaveCheckpoint(path string) error {
	return t.saveCheckpointTo(path)
}

// LoadCheckpoint reads a checkpoint file and restores a Trainer ready
// to resume training from where it left off.
func LoadCheckpoint(path string) (*Trainer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeCheckpointInto(f)
}

func decodeCheckpointInto(r io.Reader) (*Trainer, error) {
	var file checkpointFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode checkpoint: %w", err)
	}
	if file.Version != checkpointFileVersion {
		return nil, fmt.Errorf("unsupported checkpoint version %d", file.Version)
	}
	if err := file.Config.Validate(); err != nil {
		return nil, fmt.Errorf("checkpoint config invalid: %w", err)
	}

	root, err := buildRoot(file.Config)
	if err != nil {
		return nil, err
	}

	table := NewTable()
	for key, snap := range file.Entries {
		table.restore(key, entryFromSnapshot(snap))
	}

	trainer := &Trainer{
		cfg:             file.Config,
		root:            root,
		table:           table,
		log:             zerolog.Nop(),
		clock:           quartz.NewReal(),
		checkpointDir:   file.Config.CheckpointDir,
		checkpointEvery: file.Config.CheckpointEvery,
	}
	trainer.iteration.Store(int64(file.Iteration))
	return trainer, nil
}
