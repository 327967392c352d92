// Package kuhn implements Kuhn poker: three cards (Jack, Queen, King),
// one dealt to each player, one unit antes, one unit bet. It is the
// smallest game that exercises the full cfrgame.Node contract and has
// a known closed-form equilibrium, which makes it the reference game
// for testing the CFR+ traversal itself (spec.md §4.9, §8).
package kuhn

import "github.com/lox/cfrsolver/internal/cfrgame"

// Card indices.
const (
	Jack = 0
	Queen = 1
	King = 2
)

// NumCards is the length of the private-hand vector for Kuhn poker.
const NumCards = 3

// action codes recorded in the node's history. The meaning of 0/1
// depends on what preceded it: at the root or after a check, 0=bet and
// 1=check; after a bet, 0=call and 1=fold.
const (
	actBet = iota
	actCheck
	actCall
	actFold
)

var actionNames = [...]string{"Bet", "Check", "Call", "Fold"}

// Node is the root or any interior/terminal node of the Kuhn game
// tree, identified entirely by its action history.
type Node struct {
	history []uint8
}

// New returns the root of the Kuhn poker game tree.
func New() Node {
	return Node{}
}

func (n Node) last() (uint8, bool) {
	if len(n.history) == 0 {
		return 0, false
	}
	return n.history[len(n.history)-1], true
}

// IsTerminal implements cfrgame.Node.
func (n Node) IsTerminal() bool {
	last, ok := n.last()
	if !ok {
		return false
	}
	switch last {
	case actCall, actFold:
		return true
	case actCheck:
		return len(n.history) == 2
	default: // actBet
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
	last, hasLast := n.last()

	var code uint8
	switch {
	case hasLast && last == actBet:
		if action == 0 {
			code = actCall
		} else {
			code = actFold
		}
	default: // root, or after a check
		if action == 0 {
			code = actBet
		} else {
			code = actCheck
		}
	}

	next := make([]uint8, len(n.history)+1)
	copy(next, n.history)
	next[len(n.history)] = code
	return Node{history: next}
}

// PublicInfoSet implements cfrgame.Node.
func (n Node) PublicInfoSet() string {
	s := make([]byte, 0, len(n.history)*5)
	for i, code := range n.history {
		if i > 0 {
			s = append(s, '-', '>')
		}
		s = append(s, actionNames[code]...)
	}
	return string(s)
}

// PrivateInfoSetLen implements cfrgame.Node.
func (n Node) PrivateInfoSetLen() int {
	return NumCards
}

// Evaluate implements cfrgame.Node. Card-removal compatibility requires
// i != j since no hand can face itself once cards are dealt without
// replacement.
func (n Node) Evaluate(player int, pmi []float64) []float64 {
	ret := make([]float64, NumCards)
	for i := 0; i < NumCards; i++ {
		var cfv float64
		for j := 0; j < NumCards; j++ {
			if i == j {
				continue
			}
			cfv += n.payoff(player, i, j) * pmi[j] / 6.0
		}
		ret[i] = cfv
	}
	return ret
}

// payoff returns the showdown/fold payoff to the holder of myCard when
// facing oppCard, from the perspective of player (only relevant on a
// fold, where the identity of the folder matters).
func (n Node) payoff(player, myCard, oppCard int) float64 {
	last, _ := n.last()
	switch last {
	case actCall:
		if myCard > oppCard {
			return 2.0
		}
		return -2.0
	case actCheck:
		if myCard > oppCard {
			return 1.0
		}
		return -1.0
	case actFold:
		if n.CurrentPlayer() == player {
			return 1.0
		}
		return -1.0
	default:
		panic("kuhn: payoff evaluated at non-terminal node")
	}
}
