package pushfold

import (
	"bytes"
	"testing"

	"github.com/lox/cfrsolver/internal/equity"
)

func uniformPMI() []float64 {
	pmi := make([]float64, equity.NumHands)
	u := 1.0 / float64(equity.NumHands)
	for i := range pmi {
		pmi[i] = u
	}
	return pmi
}

func flatTable(equityFrac float64) *equity.Table {
	raw := make([]uint32, equity.NumHands*equity.NumHands)
	val := uint32(equityFrac * float64(equity.Showdowns))
	for i := range raw {
		raw[i] = val
	}
	var buf bytes.Buffer
	if err := equity.Encode(&buf, raw); err != nil {
		panic(err)
	}
	table, err := equity.Decode(&buf)
	if err != nil {
		panic(err)
	}
	return table
}

func TestRootNotTerminal(t *testing.T) {
	n := New(10, flatTable(0.5))
	if n.IsTerminal() {
		t.Fatal("root should not be terminal")
	}
	if n.CurrentPlayer() != 0 {
		t.Fatalf("player = %d, want 0", n.CurrentPlayer())
	}
}

func TestFoldTerminal(t *testing.T) {
	n := New(10, flatTable(0.5)).Play(actFold)
	if !n.IsTerminal() {
		t.Fatal("immediate fold should be terminal")
	}
}

func TestPushNotTerminal(t *testing.T) {
	n := New(10, flatTable(0.5)).Play(actPush)
	if n.IsTerminal() {
		t.Fatal("push alone should not be terminal, second player still to act")
	}
	if n.CurrentPlayer() != 1 {
		t.Fatalf("player = %d, want 1", n.CurrentPlayer())
	}
}

func TestPushFoldTerminal(t *testing.T) {
	n := New(10, flatTable(0.5)).Play(actPush).Play(actFold)
	if !n.IsTerminal() {
		t.Fatal("push-fold should be terminal")
	}
}

func TestPushCallTerminal(t *testing.T) {
	n := New(10, flatTable(0.5)).Play(actPush).Play(actPush)
	if !n.IsTerminal() {
		t.Fatal("push-call should be terminal")
	}
}

func TestEvaluateImmediateFoldIsSmallBlindLoss(t *testing.T) {
	n := New(10, flatTable(0.5)).Play(actFold)
	pmi := uniformPMI()
	cfv0 := n.Evaluate(0, pmi)
	cfv1 := n.Evaluate(1, pmi)
	for i := range cfv0 {
		if cfv0[i] > 0 {
			t.Fatalf("sb cfv[%d] = %v, want <= 0", i, cfv0[i])
		}
		if cfv1[i] < 0 {
			t.Fatalf("bb cfv[%d] = %v, want >= 0", i, cfv1[i])
		}
	}
}

func TestEvaluateShowdownZeroSumAtFairEquity(t *testing.T) {
	n := New(10, flatTable(0.5)).Play(actPush).Play(actPush)
	pmi := uniformPMI()
	cfv0 := n.Evaluate(0, pmi)
	for i := range cfv0 {
		if abs(cfv0[i]) > 1e-9 {
			t.Fatalf("cfv[%d] = %v, want 0 at 50%% equity", i, cfv0[i])
		}
	}
}

func TestEvaluateShowdownFavoursHigherEquity(t *testing.T) {
	n := New(10, flatTable(0.75)).Play(actPush).Play(actPush)
	pmi := uniformPMI()
	cfv0 := n.Evaluate(0, pmi)
	for i := range cfv0 {
		if cfv0[i] <= 0 {
			t.Fatalf("cfv[%d] = %v, want > 0 at 75%% equity", i, cfv0[i])
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
