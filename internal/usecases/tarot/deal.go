package tarot

import (
	"fmt"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
)

// DealCards раздаёт по одной различной карте на каждую позицию расклада.
// Частичное перемешивание Фишера-Йетса, ориентация 50/50
func DealCards(cards []domain.TarotCard, layout domain.SpreadLayout, rng domain.RNG) ([]domain.DrawnCard, error) {
	n := len(layout.Positions)
	if n == 0 {
		return nil, fmt.Errorf("%w: spread %s has no positions", domain.ErrInvalidInput, layout.ID)
	}
	if n > len(cards) {
		return nil, fmt.Errorf("%w: spread %s needs %d cards, deck has %d", domain.ErrInvalidInput, layout.ID, n, len(cards))
	}

	indices := make([]int, len(cards))
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
	}

	drawn := make([]domain.DrawnCard, n)
	for i, pos := range layout.Positions {
		orientation := domain.OrientationUpright
		if rng.Intn(2) == 1 {
			orientation = domain.OrientationReversed
		}
		drawn[i] = domain.DrawnCard{
			Position:    pos,
			Card:        cards[indices[i]],
			Orientation: orientation,
		}
	}
	return drawn, nil
}
