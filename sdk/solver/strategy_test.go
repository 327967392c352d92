package solver

import (
	"math"
	"testing"

	"github.com/lox/cfrsolver/internal/games/kuhn"
	"github.com/lox/cfrsolver/internal/vecf64"
)

func TestComputeEVZeroSumUnderUniformAverage(t *testing.T) {
	root := kuhn.New()
	avg := AverageStrategy{} // empty: every lookup falls back to uniform
	ones := vecf64.Ones(kuhn.NumCards)

	ev0 := ComputeEV(root, 0, ones, ones, avg)
	ev1 := ComputeEV(root, 1, ones, ones, avg)
	if math.Abs(ev0+ev1) > 1e-9 {
		t.Fatalf("ev0+ev1 = %v, want 0 (zero-sum)", ev0+ev1)
	}
}

func TestComputeEVDetailMatchesComputeEV(t *testing.T) {
	root := kuhn.New()
	avg := AverageStrategy{}
	ones := vecf64.Ones(kuhn.NumCards)

	want := ComputeEV(root, 0, ones, ones, avg)
	var details []EVDetail
	got := ComputeEVDetail(root, 0, ones, ones, avg, &details)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("ComputeEVDetail = %v, want %v", got, want)
	}
	if len(details) == 0 {
		t.Fatal("expected at least one EVDetail for a multi-node tree")
	}
}

func TestBestResponseAtLeastAsGoodAsAverage(t *testing.T) {
	table, root := trainKuhn(t, 3000)
	avg := ComputeAverage(table)
	ones := vecf64.Ones(kuhn.NumCards)

	ev0 := ComputeEV(root, 0, ones, ones, avg)
	br0 := vecf64.Sum(BestResponse(root, 0, ones, avg))
	if br0 < ev0-1e-9 {
		t.Fatalf("best response value %v should be >= average-strategy EV %v", br0, ev0)
	}
}

func TestExploitabilityNonNegative(t *testing.T) {
	table, root := trainKuhn(t, 500)
	avg := ComputeAverage(table)
	if Exploitability(root, avg) < 0 {
		t.Fatal("exploitability should never be negative")
	}
}

func TestExploitabilityDecreasesWithTraining(t *testing.T) {
	early, rootEarly := trainKuhn(t, 50)
	late, rootLate := trainKuhn(t, 5000)

	expEarly := Exploitability(rootEarly, ComputeAverage(early))
	expLate := Exploitability(rootLate, ComputeAverage(late))

	if expLate > expEarly {
		t.Fatalf("exploitability after 5000 iterations (%v) should not exceed after 50 (%v)", expLate, expEarly)
	}
}
