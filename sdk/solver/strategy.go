package solver

import (
	"github.com/lox/cfrsolver/internal/cfrgame"
	"github.com/lox/cfrsolver/internal/vecf64"
)

// AverageStrategy maps a public info set to its normalised average
// strategy, the durable output of training. Index [a][i] is the
// probability of taking action a holding hand i.
type AverageStrategy map[string][][]float64

// ComputeAverage derives the average strategy from every info set
// touched during training.
func ComputeAverage(table *Table) AverageStrategy {
	out := make(AverageStrategy, table.Size())
	for key, entry := range table.Entries() {
		out[key] = entry.AverageStrategy()
	}
	return out
}

func (avg AverageStrategy) at(node cfrgame.Node) [][]float64 {
	sigma, ok := avg[node.PublicInfoSet()]
	if ok {
		return sigma
	}
	actions := node.NumActions()
	hands := node.PrivateInfoSetLen()
	uniform := 1.0 / float64(actions)
	sigma = make([][]float64, actions)
	for a := range sigma {
		sigma[a] = vecf64.NewFilled(hands, uniform)
	}
	return sigma
}

// ComputeEV returns the scalar expected value to player of playing avg
// against itself from node, given own-reach pi and opponent-reach pmi.
func ComputeEV(node cfrgame.Node, player int, pi, pmi []float64, avg AverageStrategy) float64 {
	if node.IsTerminal() {
		return vecf64.Dot(node.Evaluate(player, pmi), pi)
	}
	sigma := avg.at(node)
	acting := node.CurrentPlayer()
	total := 0.0
	for a := 0; a < node.NumActions(); a++ {
		if acting == player {
			total += ComputeEV(node.Play(a), player, vecf64.Mul(pi, sigma[a]), pmi, avg)
		} else {
			total += ComputeEV(node.Play(a), player, pi, vecf64.Mul(pmi, sigma[a]), avg)
		}
	}
	return total
}

// EVDetail records the length-H contribution vector at a single public
// info set, captured while walking the average strategy for display.
type EVDetail struct {
	PublicInfoSet string
	Contribution  []float64
}

// ComputeEVDetail is ComputeEV's instrumented sibling: it returns the
// same scalar EV but also appends one EVDetail per visited info set, in
// depth-first pre-order — the reach-weighted per-hand value vector
// contributed at that node — giving a per-node breakdown of where value
// comes from.
func ComputeEVDetail(node cfrgame.Node, player int, pi, pmi []float64, avg AverageStrategy, out *[]EVDetail) float64 {
	if node.IsTerminal() {
		return vecf64.Dot(node.Evaluate(player, pmi), pi)
	}
	contribution := evVector(node, player, pi, pmi, avg)
	*out = append(*out, EVDetail{PublicInfoSet: node.PublicInfoSet(), Contribution: contribution})
	sigma := avg.at(node)
	acting := node.CurrentPlayer()
	for a := 0; a < node.NumActions(); a++ {
		if acting == player {
			ComputeEVDetail(node.Play(a), player, vecf64.Mul(pi, sigma[a]), pmi, avg, out)
		} else {
			ComputeEVDetail(node.Play(a), player, pi, vecf64.Mul(pmi, sigma[a]), avg, out)
		}
	}
	return vecf64.Sum(contribution)
}

// evVector returns the reach-weighted per-hand value vector: its sum
// equals ComputeEV at the same node and arguments.
func evVector(node cfrgame.Node, player int, pi, pmi []float64, avg AverageStrategy) []float64 {
	if node.IsTerminal() {
		return vecf64.Mul(node.Evaluate(player, pmi), pi)
	}
	sigma := avg.at(node)
	acting := node.CurrentPlayer()
	total := vecf64.Zeros(node.PrivateInfoSetLen())
	for a := 0; a < node.NumActions(); a++ {
		if acting == player {
			vecf64.AddInPlace(total, evVector(node.Play(a), player, vecf64.Mul(pi, sigma[a]), pmi, avg))
		} else {
			vecf64.AddInPlace(total, evVector(node.Play(a), player, pi, vecf64.Mul(pmi, sigma[a]), avg))
		}
	}
	return total
}

// BestResponse returns the length-H vector of best-response values for
// player against avg, starting from node with opponent-reach pmi (the
// initial call uses an all-ones vector).
func BestResponse(node cfrgame.Node, player int, pmi []float64, avg AverageStrategy) []float64 {
	if node.IsTerminal() {
		return node.Evaluate(player, pmi)
	}
	sigma := avg.at(node)
	acting := node.CurrentPlayer()
	hands := node.PrivateInfoSetLen()

	if acting == player {
		best := vecf64.NewFilled(hands, negInf)
		for a := 0; a < node.NumActions(); a++ {
			child := BestResponse(node.Play(a), player, pmi, avg)
			best = vecf64.Max(best, child)
		}
		return best
	}

	total := vecf64.Zeros(hands)
	for a := 0; a < node.NumActions(); a++ {
		childPmi := vecf64.Mul(pmi, sigma[a])
		vecf64.AddInPlace(total, BestResponse(node.Play(a), player, childPmi, avg))
	}
	return total
}

const negInf = -1e18

// Exploitability returns the sum of best-response values for both
// players against avg from the root, in game-specific units (e.g. big
// blinds for the poker games, ante units for Kuhn).
func Exploitability(root cfrgame.Node, avg AverageStrategy) float64 {
	ones := vecf64.Ones(root.PrivateInfoSetLen())
	br0 := BestResponse(root, 0, ones, avg)
	br1 := BestResponse(root, 1, ones, avg)
	return vecf64.Sum(br0) + vecf64.Sum(br1)
}
