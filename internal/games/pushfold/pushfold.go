// Package pushfold implements the heads-up push/fold endgame: the
// small blind either folds or shoves all-in for effStack, and if
// shoved the big blind either folds or calls. It operates over the
// full 1326-hand private-information space and is the first game in
// the pack to depend on the loaded equity table (spec.md §4.9,
// original_source/src/game_push_fold.rs).
package pushfold

import (
	"github.com/lox/cfrsolver/internal/cfrgame"
	"github.com/lox/cfrsolver/internal/equity"
)

const (
	actFold = 0
	actPush = 1 // or, at the second decision, "call"
)

// Node is a point in the push/fold game tree, identified by the
// action history (length 0, 1, or 2) and the stack depth the whole
// tree is being solved for.
type Node struct {
	effStack float64
	history  []uint8
	table    *equity.Table
}

// New returns the root of the push/fold game tree for the given
// effective stack (in big blinds) and equity table.
func New(effStack float64, table *equity.Table) Node {
	return Node{effStack: effStack, table: table}
}

// IsTerminal implements cfrgame.Node.
func (n Node) IsTerminal() bool {
	switch len(n.history) {
	case 1:
		return n.history[0] == actFold
	case 2:
		return true
	default:
		return false
	}
}

// CurrentPlayer implements cfrgame.Node.
func (n Node) CurrentPlayer() int {
	return len(n.history) % 2
}

// NumActions implements cfrgame.Node.
func (n Node) NumActions() int {
	return 2
}

// Play implements cfrgame.Node.
func (n Node) Play(action int) cfrgame.Node {
	next := make([]uint8, len(n.history)+1)
	copy(next, n.history)
	next[len(n.history)] = uint8(action)
	return Node{effStack: n.effStack, history: next, table: n.table}
}

// PublicInfoSet implements cfrgame.Node.
func (n Node) PublicInfoSet() string {
	s := make([]byte, len(n.history))
	for i, c := range n.history {
		s[i] = '0' + c
	}
	return string(s)
}

// PrivateInfoSetLen implements cfrgame.Node.
func (n Node) PrivateInfoSetLen() int {
	return equity.NumHands
}

// Evaluate implements cfrgame.Node.
//
// Two terminal shapes exist: a length-1 history is the small blind
// folding before ever contesting the pot (loses its 0.5bb blind), and
// a length-2 history is either a fold to the shove (the big blind
// forfeits its 1bb blind) or a call (showdown for effStack).
func (n Node) Evaluate(player int, pmi []float64) []float64 {
	if n.history[len(n.history)-1] == actFold {
		var payoff float64
		if len(n.history) == 1 {
			payoff = [2]float64{-0.5, 0.5}[player]
		} else {
			payoff = [2]float64{1.0, -1.0}[player]
		}
		return equity.CardRemovalFold(payoff, pmi)
	}
	return equity.CardRemovalShowdown(n.table, n.effStack, pmi)
}
