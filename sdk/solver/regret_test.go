package solver

import "testing"

func TestStrategyUniformFallbackWhenNoRegret(t *testing.T) {
	e := newEntry(3, 2)
	sigma := e.Strategy()
	for a := 0; a < 3; a++ {
		for i := 0; i < 2; i++ {
			if sigma[a][i] != 1.0/3 {
				t.Fatalf("sigma[%d][%d] = %v, want 1/3", a, i, sigma[a][i])
			}
		}
	}
}

func TestUpdateClipsNegativeRegretToZero(t *testing.T) {
	e := newEntry(2, 1)
	childCFV := [][]float64{{-5}, {1}}
	cfv := []float64{0}
	pi := []float64{1}
	sigma := [][]float64{{0.5}, {0.5}}
	e.Update(childCFV, cfv, pi, sigma, 1)

	if e.cumCFR[0][0] < 0 {
		t.Fatalf("cumCFR[0][0] = %v, want >= 0", e.cumCFR[0][0])
	}
	if e.cumCFR[1][0] != 1 {
		t.Fatalf("cumCFR[1][0] = %v, want 1", e.cumCFR[1][0])
	}
}

func TestStrategySumsToOnePerHand(t *testing.T) {
	e := newEntry(3, 2)
	e.cumCFR[0] = []float64{2, 0}
	e.cumCFR[1] = []float64{1, 3}
	e.cumCFR[2] = []float64{0, 0}
	sigma := e.Strategy()
	for i := 0; i < 2; i++ {
		total := 0.0
		for a := 0; a < 3; a++ {
			if sigma[a][i] < 0 {
				t.Fatalf("sigma[%d][%d] = %v, want >= 0", a, i, sigma[a][i])
			}
			total += sigma[a][i]
		}
		if diff := total - 1.0; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("hand %d strategy sums to %v, want 1", i, total)
		}
	}
}

func TestAverageStrategyZeroForUnreachedHand(t *testing.T) {
	e := newEntry(2, 2)
	e.cumSGM[0] = []float64{4, 0}
	e.cumSGM[1] = []float64{0, 0}
	avg := e.AverageStrategy()
	if avg[0][0] != 1 {
		t.Fatalf("avg[0][0] = %v, want 1", avg[0][0])
	}
	if avg[0][1] != 0 || avg[1][1] != 0 {
		t.Fatalf("unreached hand strategy = %v,%v, want 0,0", avg[0][1], avg[1][1])
	}
}

func TestTableGetIsIdempotent(t *testing.T) {
	table := NewTable()
	a := table.Get("I", 2, 3)
	b := table.Get("I", 2, 3)
	if a != b {
		t.Fatal("Get should return the same entry for a repeated key")
	}
	if table.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", table.Size())
	}
}

func TestTableLookupMissing(t *testing.T) {
	table := NewTable()
	if _, ok := table.Lookup("nope"); ok {
		t.Fatal("Lookup should report missing keys as absent")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	e := newEntry(2, 2)
	e.cumCFR[0] = []float64{3, 0}
	e.cumSGM[1] = []float64{1, 2}

	snap := e.snapshot()
	restored := entryFromSnapshot(snap)

	if restored.cumCFR[0][0] != 3 {
		t.Fatalf("restored cumCFR[0][0] = %v, want 3", restored.cumCFR[0][0])
	}
	if restored.cumSGM[1][1] != 2 {
		t.Fatalf("restored cumSGM[1][1] = %v, want 2", restored.cumSGM[1][1])
	}
}
