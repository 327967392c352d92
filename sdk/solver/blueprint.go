package solver

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/lox/cfrsolver/internal/cfrgame"
	"github.com/lox/cfrsolver/internal/fileutil"
)

const blueprintFileVersion = 1

// Blueprint is the final, durable output of a training run: the
// average strategy plus the scalar diagnostics computed alongside it.
// Unlike a checkpoint it carries no accumulator state and cannot be
// resumed from — it is meant for runtime policy lookups and the
// viewer.
type Blueprint struct {
	Version        int             `json:"version"`
	GeneratedAt    time.Time       `json:"generated_at"`
	Game           Game            `json:"game"`
	Iterations     int             `json:"iterations"`
	EffStack       float64         `json:"eff_stack"`
	EVPlayerZero   float64         `json:"ev_player_zero"`
	Exploitability float64         `json:"exploitability"`
	Strategies     AverageStrategy `json:"strategies"`
}

// Save writes the blueprint to disk atomically, in JSON format.
func (b *Blueprint) Save(path string) error {
	if b == nil {
		return errors.New("nil blueprint")
	}
	if path == "" {
		return errors.New("destination path is required")
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

// LoadBlueprint reads a blueprint from disk.
func LoadBlueprint(path string) (*Blueprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var bp Blueprint
	if err := json.NewDecoder(f).Decode(&bp); err != nil {
		return nil, err
	}
	if bp.Version != blueprintFileVersion {
		return nil, errors.New("unsupported blueprint version")
	}
	if !bp.Game.Valid() {
		return nil, errors.New("unsupported game in blueprint")
	}
	return &bp, nil
}

// Strategy returns the stored average strategy at node, falling back
// to uniform for any info set never visited during training.
func (b *Blueprint) Strategy(node cfrgame.Node) [][]float64 {
	if b == nil {
		return nil
	}
	return b.Strategies.at(node)
}
