package solver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lox/cfrsolver/internal/games/kuhn"
)

func TestBlueprintSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultTrainingConfig()
	cfg.Iterations = 100
	trainer := testTrainer(t, cfg)
	if err := trainer.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	bp := trainer.Blueprint()

	path := filepath.Join(t.TempDir(), "blueprint.json")
	if err := bp.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadBlueprint(path)
	if err != nil {
		t.Fatalf("LoadBlueprint: %v", err)
	}
	if loaded.Iterations != bp.Iterations {
		t.Fatalf("loaded.Iterations = %d, want %d", loaded.Iterations, bp.Iterations)
	}
	if loaded.Game != bp.Game {
		t.Fatalf("loaded.Game = %v, want %v", loaded.Game, bp.Game)
	}
	if len(loaded.Strategies) != len(bp.Strategies) {
		t.Fatalf("loaded has %d info sets, want %d", len(loaded.Strategies), len(bp.Strategies))
	}
}

func TestBlueprintStrategyFallsBackToUniformForUnseenNode(t *testing.T) {
	bp := &Blueprint{Game: GameKuhn, Strategies: AverageStrategy{}}
	node := kuhn.New()
	sigma := bp.Strategy(node)
	if len(sigma) != node.NumActions() {
		t.Fatalf("fallback strategy has %d actions, want %d", len(sigma), node.NumActions())
	}
}
