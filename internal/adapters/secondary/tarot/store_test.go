package tarot

import (
	"context"
	"testing"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStoreCards(t *testing.T) {
	store := NewEmbeddedStore()

	cards, err := store.Cards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 22)

	seen := make(map[string]bool, len(cards))
	for i, card := range cards {
		assert.Equal(t, i, card.Number, card.ID)
		assert.Equal(t, "major", card.Arcana, card.ID)
		assert.NotEmpty(t, card.NameRu, card.ID)
		assert.NotEmpty(t, card.ShortMeaning, card.ID)
		assert.NotEmpty(t, card.ReversedMeaning, card.ID)
		assert.NotEmpty(t, card.FullInterpretation, card.ID)
		assert.False(t, seen[card.ID], "duplicate card %s", card.ID)
		seen[card.ID] = true
	}

	assert.Equal(t, "Шут", cards[0].NameRu)
	assert.Equal(t, "Мир", cards[21].NameRu)
}

func TestEmbeddedStoreLayouts(t *testing.T) {
	store := NewEmbeddedStore()

	layouts, err := store.Layouts(context.Background())
	require.NoError(t, err)
	require.Len(t, layouts, 3)

	sizes := map[string]int{}
	for _, layout := range layouts {
		sizes[layout.ID] = len(layout.Positions)
		for i, pos := range layout.Positions {
			assert.Equal(t, i+1, pos.Index, layout.ID)
			assert.NotEmpty(t, pos.Name, layout.ID)
		}
	}
	assert.Equal(t, map[string]int{"three-card": 3, "celtic-cross": 10, "love": 5}, sizes)

	three, err := store.Layout(context.Background(), "three-card")
	require.NoError(t, err)
	assert.Equal(t, "Тройка карт", three.Name)
	assert.Equal(t, "Прошлое", three.Positions[0].Name)
	assert.Equal(t, "Будущее", three.Positions[2].Name)
}

func TestEmbeddedStoreUnknownLayout(t *testing.T) {
	_, err := NewEmbeddedStore().Layout(context.Background(), "horseshoe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmbeddedStoreReturnsCopies(t *testing.T) {
	store := NewEmbeddedStore()

	cards, err := store.Cards(context.Background())
	require.NoError(t, err)
	cards[0].NameRu = "changed"

	again, err := store.Cards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Шут", again[0].NameRu)
}
