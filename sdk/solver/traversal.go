package solver

import (
	"github.com/lox/cfrsolver/internal/cfrgame"
	"github.com/lox/cfrsolver/internal/vecf64"

	"golang.org/x/sync/errgroup"
)

// parallelDepth bounds how many levels from the root the traversal
// forks children into goroutines. Below it recursion stays serial:
// most of the tree's volume is near the leaves, where the errgroup and
// slice-allocation overhead per call would outweigh the parallelism.
const parallelDepth = 2

// CFR runs one counterfactual-regret-minimization-plus pass: it
// updates the accumulators at every info set belonging to
// updatingPlayer reached along the way, and returns the length-H
// counterfactual value vector for updatingPlayer at node.
//
// pi is updatingPlayer's own-reach vector, pmi is the opponent's reach
// vector; both length H. iter is the 1-indexed training iteration,
// used for linear strategy averaging.
func CFR(table *Table, node cfrgame.Node, iter, updatingPlayer int, pi, pmi []float64) []float64 {
	return cfr(table, node, iter, updatingPlayer, pi, pmi, 0)
}

func cfr(table *Table, node cfrgame.Node, iter, updatingPlayer int, pi, pmi []float64, depth int) []float64 {
	if node.IsTerminal() {
		return node.Evaluate(updatingPlayer, pmi)
	}

	key := node.PublicInfoSet()
	actions := node.NumActions()
	hands := node.PrivateInfoSetLen()
	entry := table.Get(key, actions, hands)
	sigma := entry.Strategy()

	player := node.CurrentPlayer()
	if player == updatingPlayer {
		childCFV, cfv := fanOut(table, node, iter, updatingPlayer, pi, pmi, sigma, depth, true)
		entry.Update(childCFV, cfv, pi, sigma, iter)
		return cfv
	}

	_, cfv := fanOut(table, node, iter, updatingPlayer, pi, pmi, sigma, depth, false)
	return cfv
}

// fanOut recurses into every action at node, scaling whichever reach
// vector belongs to the acting player. It returns the per-action child
// values and their sum: sigma-weighted when updating is true (the
// caller forms regrets from the child values), a plain sum otherwise
// (the child values already carry sigma through pmi).
func fanOut(table *Table, node cfrgame.Node, iter, updatingPlayer int, pi, pmi []float64, sigma [][]float64, depth int, updating bool) ([][]float64, []float64) {
	actions := len(sigma)
	hands := node.PrivateInfoSetLen()
	childCFV := make([][]float64, actions)

	run := func(a int) []float64 {
		if updating {
			piA := vecf64.Mul(pi, sigma[a])
			return cfr(table, node.Play(a), iter, updatingPlayer, piA, pmi, depth+1)
		}
		pmiA := vecf64.Mul(pmi, sigma[a])
		return cfr(table, node.Play(a), iter, updatingPlayer, pi, pmiA, depth+1)
	}

	if depth < parallelDepth && actions > 1 {
		var g errgroup.Group
		for a := 0; a < actions; a++ {
			a := a
			g.Go(func() error {
				childCFV[a] = run(a)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for a := 0; a < actions; a++ {
			childCFV[a] = run(a)
		}
	}

	cfv := vecf64.Zeros(hands)
	for a := 0; a < actions; a++ {
		if updating {
			vecf64.AddInPlace(cfv, vecf64.Mul(childCFV[a], sigma[a]))
		} else {
			vecf64.AddInPlace(cfv, childCFV[a])
		}
	}
	return childCFV, cfv
}
