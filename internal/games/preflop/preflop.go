// Package preflop implements a heads-up pre-flop no-limit hold'em
// abstraction: fold, call, or raise to 3x, 4x, or all-in, with later
// raise sizes only offered once the effective stack can support them.
// Like pushfold, it operates over the full 1326-hand private space and
// consumes the shared equity table (spec.md §4.9,
// original_source/src/game_preflop.rs).
package preflop

import (
	"github.com/lox/cfrsolver/internal/cfrgame"
	"github.com/lox/cfrsolver/internal/equity"
)

const (
	actFold = 0
	actCall = 1
	act3x   = 2
	act4x   = 3
	actAllIn = 4
)

// Node is a point in the pre-flop game tree. prevBet is the wager
// level the folded-to player already had matched (used to size the
// fold payoff); curBet is the wager level the next raise is measured
// against and the stake at showdown.
type Node struct {
	prevBet  float64
	curBet   float64
	effStack float64
	history  []uint8
	table    *equity.Table
}

// New returns the root of the pre-flop tree: a 0.5bb small blind
// facing a 1bb big blind, solved to the given effective stack.
func New(effStack float64, table *equity.Table) Node {
	return Node{prevBet: 0.5, curBet: 1.0, effStack: effStack, table: table}
}

// IsTerminal implements cfrgame.Node.
func (n Node) IsTerminal() bool {
	if len(n.history) == 0 {
		return false
	}
	switch n.history[len(n.history)-1] {
	case actFold:
		return true
	case actCall:
		return len(n.history) >= 2
	default:
		return false
	}
}

// CurrentPlayer implements cfrgame.Node.
func (n Node) CurrentPlayer() int {
	return len(n.history) % 2
}

// NumActions implements cfrgame.Node.
//
// The raise ladder only offers a sizing once the remaining effective
// stack is a large enough multiple of the current bet to make it a
// distinct action: 3x and 4x require headroom beyond the next size up,
// and all-in is always available once any raise is.
func (n Node) NumActions() int {
	ratio := n.effStack / n.curBet
	actions := 2
	if ratio > 1.0 {
		actions++
	}
	if ratio > 3.0 {
		actions++
	}
	if ratio > 4.0 {
		actions++
	}
	return actions
}

// Play implements cfrgame.Node. A raise caps curBet at effStack: a
// player can never be asked to wager more than they have behind.
func (n Node) Play(action int) cfrgame.Node {
	next := Node{prevBet: n.prevBet, curBet: n.curBet, effStack: n.effStack, table: n.table}
	if action > 0 {
		next.prevBet = n.curBet
		switch action {
		case act3x:
			next.curBet = n.curBet * 3.0
		case act4x:
			next.curBet = n.curBet * 4.0
		case actAllIn:
			next.curBet = n.effStack
		default: // actCall
			next.curBet = n.curBet
		}
		if next.curBet > n.effStack {
			next.curBet = n.effStack
		}
	}
	next.history = make([]uint8, len(n.history)+1)
	copy(next.history, n.history)
	next.history[len(n.history)] = uint8(action)
	return next
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
func (n Node) Evaluate(player int, pmi []float64) []float64 {
	if n.history[len(n.history)-1] == actFold {
		payoff := n.prevBet
		if player^n.CurrentPlayer() != 0 {
			payoff = -n.prevBet
		}
		return equity.CardRemovalFold(payoff, pmi)
	}
	return equity.CardRemovalShowdown(n.table, n.curBet, pmi)
}
