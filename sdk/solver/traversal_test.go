package solver

import (
	"math"
	"testing"

	"github.com/lox/cfrsolver/internal/games/kuhn"
	"github.com/lox/cfrsolver/internal/vecf64"
)

func trainKuhn(t *testing.T, iterations int) (*Table, kuhn.Node) {
	t.Helper()
	table := NewTable()
	root := kuhn.New()
	ones := vecf64.Ones(kuhn.NumCards)
	for i := 1; i <= iterations; i++ {
		for player := 0; player < 2; player++ {
			CFR(table, root, i, player, ones, ones)
		}
	}
	return table, root
}

func TestCFRKuhnStrategiesAreDistributions(t *testing.T) {
	table, _ := trainKuhn(t, 2000)
	for key, entry := range table.Entries() {
		sigma := entry.Strategy()
		for i := 0; i < kuhn.NumCards; i++ {
			total := 0.0
			for a := 0; a < entry.actions; a++ {
				if sigma[a][i] < -1e-9 {
					t.Fatalf("info set %q action %d hand %d: negative probability %v", key, a, i, sigma[a][i])
				}
				total += sigma[a][i]
			}
			if math.Abs(total-1) > 1e-9 {
				t.Fatalf("info set %q hand %d: strategy sums to %v, want 1", key, i, total)
			}
		}
	}
}

func TestCFRKuhnRegretsNeverNegative(t *testing.T) {
	table, _ := trainKuhn(t, 2000)
	for key, entry := range table.Entries() {
		for a, row := range entry.cumCFR {
			for i, v := range row {
				if v < 0 {
					t.Fatalf("info set %q action %d hand %d: cumCFR = %v, want >= 0", key, a, i, v)
				}
			}
		}
	}
}

func TestCFRKuhnConvergesNearKnownValue(t *testing.T) {
	table, root := trainKuhn(t, 20000)
	avg := ComputeAverage(table)
	ones := vecf64.Ones(kuhn.NumCards)
	ev0 := ComputeEV(root, 0, ones, ones, avg)

	// Kuhn poker's game value to the first player at equilibrium is
	// -1/18 (in ante units), independent of the equilibrium chosen from
	// the one-parameter family of optima.
	want := -1.0 / 18.0
	if math.Abs(ev0-want) > 0.02 {
		t.Fatalf("player 0 EV = %v, want approximately %v", ev0, want)
	}
}

func TestCFRKuhnExploitabilityIsSmallAfterTraining(t *testing.T) {
	table, root := trainKuhn(t, 20000)
	avg := ComputeAverage(table)
	exploit := Exploitability(root, avg)
	if exploit > 0.05 {
		t.Fatalf("exploitability = %v, want close to 0 after training", exploit)
	}
}

func TestCFRZeroIterationsLeavesTableEmpty(t *testing.T) {
	table := NewTable()
	if table.Size() != 0 {
		t.Fatalf("fresh table size = %d, want 0", table.Size())
	}
}
