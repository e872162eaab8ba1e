package cardology

import "fmt"

// ChainLength is the length of a full fractal walk, one card per day of a
// planetary period.
const ChainLength = DeckSize

// ExtractChain walks spread from anchor and returns exactly length cards.
//
// The walk follows the spread's reading order: each planetary row left to
// right in Rows order, then the crown, then wrapping back to the top of
// Mercury. It begins on the card after the anchor, so a full 52-card chain
// visits every card once and ends on the anchor itself.
//
// The result depends only on the arguments. Calling it again with the same
// inputs yields the same sequence.
func ExtractChain(spread Spread, anchor Card, length int) ([]Card, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}
	start, err := spread.position(anchor)
	if err != nil {
		return nil, fmt.Errorf("extract chain: %w", err)
	}

	chain := make([]Card, length)
	for i := range chain {
		chain[i] = spread.cards[(start+1+i)%DeckSize]
	}
	return chain, nil
}
