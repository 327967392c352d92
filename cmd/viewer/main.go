// Command viewer is an interactive terminal browser for a trained
// blueprint: it walks the action tree one decision at a time and
// renders the 13x13 starting-hand grid (push/fold, pre-flop) or a
// per-card bar view (Kuhn) for whichever public info set is currently
// selected, the grid color-coded by action frequency. Grounded on
// original_source/src/main_viewer.rs, rebuilt with the bubbletea
// stack already used for the pack's other interactive terminal UIs
// instead of raw crossterm escape sequences.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/cfrsolver/internal/cfrgame"
	"github.com/lox/cfrsolver/internal/games/kuhn"
	"github.com/lox/cfrsolver/internal/games/preflop"
	"github.com/lox/cfrsolver/internal/games/pushfold"
	"github.com/lox/cfrsolver/sdk/solver"
)

var cli struct {
	Blueprint string `arg:"" help:"path to a saved blueprint file"`
}

func main() {
	kong.Parse(&cli, kong.Name("viewer"), kong.Description("interactive blueprint range viewer"))

	bp, err := solver.LoadBlueprint(cli.Blueprint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load blueprint: %v\n", err)
		os.Exit(1)
	}

	root, err := buildRoot(bp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(bp, root), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "viewer: %v\n", err)
		os.Exit(1)
	}
}

// buildRoot reconstructs the game's root node from the blueprint's
// metadata alone. The viewer never calls Evaluate, so it never needs
// the equity table the training-time root requires.
func buildRoot(bp *solver.Blueprint) (cfrgame.Node, error) {
	switch bp.Game {
	case solver.GameKuhn:
		return kuhn.New(), nil
	case solver.GamePushFold:
		return pushfold.New(bp.EffStack, nil), nil
	case solver.GamePreflop:
		return preflop.New(bp.EffStack, nil), nil
	default:
		return nil, fmt.Errorf("unknown game %q in blueprint", bp.Game)
	}
}
