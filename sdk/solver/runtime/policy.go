// Package runtime exposes a trained blueprint for sampling actions at
// play time. It uses only sdk/solver's Blueprint type and loader, not
// its training entry points.
package runtime

import (
	"errors"
	"math/rand/v2"

	"github.com/lox/cfrsolver/internal/cfrgame"
	"github.com/lox/cfrsolver/sdk/solver"
)

// Policy exposes read-only access to a solver blueprint for sampling
// actions during live play.
type Policy struct {
	blueprint *solver.Blueprint
}

// Load constructs a runtime policy from a stored blueprint file.
func Load(path string) (*Policy, error) {
	bp, err := solver.LoadBlueprint(path)
	if err != nil {
		return nil, err
	}
	return &Policy{blueprint: bp}, nil
}

// Blueprint returns the underlying blueprint metadata (read-only).
func (p *Policy) Blueprint() *solver.Blueprint {
	if p == nil {
		return nil
	}
	return p.blueprint
}

// ActionWeights returns the per-action probability for the given hand
// at node, read from the blueprint's average strategy. An info set
// missing from the blueprint falls back to uniform; at a stored info
// set, a hand the average strategy never reached has all-zero weights.
func (p *Policy) ActionWeights(node cfrgame.Node, hand int) ([]float64, error) {
	if p == nil || p.blueprint == nil {
		return nil, errors.New("nil policy")
	}
	if hand < 0 || hand >= node.PrivateInfoSetLen() {
		return nil, errors.New("hand index out of range")
	}

	sigma := p.blueprint.Strategy(node)
	weights := make([]float64, node.NumActions())
	for a := range weights {
		weights[a] = sigma[a][hand]
	}
	return weights, nil
}

// SampleAction draws an action index from ActionWeights using rng. A
// nil rng uses the default, unseeded source.
func (p *Policy) SampleAction(node cfrgame.Node, hand int, rng *rand.Rand) (int, error) {
	weights, err := p.ActionWeights(node, hand)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0, errors.New("degenerate action distribution")
	}

	draw := rand.Float64() * total
	if rng != nil {
		draw = rng.Float64() * total
	}
	acc := 0.0
	for i, w := range weights {
		acc += w
		if draw <= acc {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}
