package equity

// Cards are indexed 0..51; Rank and Suit recover the standard-deck
// rank (0=deuce..12=ace) and suit (0..3) for card c, matching the
// enumeration rank*4+suit used throughout the push/fold and pre-flop
// games and their checkpoint summaries.
func Rank(card int) int { return card / 4 }
func Suit(card int) int { return card % 4 }

// pairIndex[i][j] (i<j) is the flat index of the unordered hand {i,j}
// in the canonical i<j enumeration. Built once; a closed form exists
// but the tables are small (52x52 and 1326 entries) and built in a few
// microseconds, which
// keeps HandIndex/HandAt simple and branch-free at call sites.
var (
	pairIndex [52][52]int
	pairCards [NumHands][2]int
)

func init() {
	k := 0
	for i := 0; i < 51; i++ {
		for j := i + 1; j < 52; j++ {
			pairIndex[i][j] = k
			pairCards[k] = [2]int{i, j}
			k++
		}
	}
}

// HandIndex returns the flat index (0..1325) of the unordered hand
// {i,j}, i<j, in the canonical enumeration.
func HandIndex(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return pairIndex[i][j]
}

// HandAt returns the two cards making up hand index k.
func HandAt(k int) (i, j int) {
	c := pairCards[k]
	return c[0], c[1]
}

// CardRemovalFold computes the card-removal-aware counterfactual value
// vector when a hand ends in a fold: for each of the 1326 own hands,
// the fixed payoff weighted by the sum of opponent reach probabilities
// over every opponent hand disjoint from the own hand's two cards.
// Shared by the push/fold and pre-flop games, whose fold terminals
// differ only in the payoff magnitude and sign (spec.md §4.9,
// original_source/src/game_push_fold.rs, game_preflop.rs).
func CardRemovalFold(payoff float64, pmi []float64) []float64 {
	const prob = (2.0 * 2.0) / (52.0 * 51.0 * 50.0 * 49.0)

	pmiSum := 0.0
	for _, v := range pmi {
		pmiSum += v
	}

	var pmiSumEx [52]float64
	k := 0
	for i := 0; i < 51; i++ {
		for j := i + 1; j < 52; j++ {
			pmiSumEx[i] += pmi[k]
			pmiSumEx[j] += pmi[k]
			k++
		}
	}

	ret := make([]float64, NumHands)
	k = 0
	for i := 0; i < 51; i++ {
		for j := i + 1; j < 52; j++ {
			ret[k] = payoff * prob * (pmiSum - pmiSumEx[i] - pmiSumEx[j] + pmi[k])
			k++
		}
	}
	return ret
}

// CardRemovalShowdown computes the card-removal-aware counterfactual
// value vector at a showdown: for each own hand (i,j), the sum over
// every opponent hand (m,n) disjoint from {i,j} of
// scale*(2*equity(i,j,m,n)-1)*pmi[hand_index(m,n)]. scale is the
// current bet (push/fold: eff_stack; pre-flop: cur_bet).
func CardRemovalShowdown(table *Table, scale float64, pmi []float64) []float64 {
	const prob = (2.0 * 2.0) / (52.0 * 51.0 * 50.0 * 49.0)

	ret := make([]float64, NumHands)
	k := 0
	own := 0
	for i := 0; i < 51; i++ {
		for j := i + 1; j < 52; j++ {
			kStart := k
			cfvalue := 0.0
			for m := 0; m < 51; m++ {
				for n := m + 1; n < 52; n++ {
					if i == m || i == n || j == m || j == n {
						k++
						continue
					}
					eq := table.At(k)
					ev := scale * (2*eq - 1)
					cfvalue += ev * pmi[k-kStart]
					k++
				}
			}
			ret[own] = cfvalue * prob
			own++
		}
	}
	return ret
}
