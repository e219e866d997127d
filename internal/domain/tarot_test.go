package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeCardLayout() SpreadLayout {
	return SpreadLayout{
		ID: "three-card",
		Positions: []SpreadPosition{
			{Index: 0, Name: "Прошлое"},
			{Index: 1, Name: "Настоящее"},
			{Index: 2, Name: "Будущее"},
		},
	}
}

func drawn(n int) []DrawnCard {
	cards := make([]DrawnCard, n)
	for i := range cards {
		cards[i] = DrawnCard{
			Position:    SpreadPosition{Index: i},
			Card:        TarotCard{ID: "card", ShortMeaning: "up", ReversedMeaning: "down"},
			Orientation: OrientationUpright,
		}
	}
	return cards
}

func TestTarotSessionLifecycle(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	session := NewTarotSession(uuid.New(), now)
	assert.Equal(t, TarotStateEmpty, session.State)
	assert.Empty(t, session.Cards)

	shuffling, err := session.StartShuffle(now)
	require.NoError(t, err)
	assert.Equal(t, TarotStateShuffling, shuffling.State)
	// исходное значение не меняется
	assert.Equal(t, TarotStateEmpty, session.State)

	_, err = shuffling.StartShuffle(now)
	require.ErrorIs(t, err, ErrInvalidTransition)

	ready, err := shuffling.FinishShuffle(now)
	require.NoError(t, err)
	assert.Equal(t, TarotStateReady, ready.State)

	laid, err := ready.LayOut(threeCardLayout(), drawn(3), now.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, TarotStateLaidOut, laid.State)
	assert.Equal(t, "three-card", laid.SpreadID)
	assert.Len(t, laid.Cards, 3)
	assert.Equal(t, now.Add(time.Second), laid.UpdatedAt)

	// повторное перемешивание убирает выложенные карты
	again, err := laid.StartShuffle(now)
	require.NoError(t, err)
	assert.Empty(t, again.Cards)
	assert.Empty(t, again.SpreadID)
}

func TestTarotSessionInvalidTransitions(t *testing.T) {
	now := time.Now()
	session := NewTarotSession(uuid.New(), now)

	_, err := session.FinishShuffle(now)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = session.LayOut(threeCardLayout(), drawn(3), now)
	require.ErrorIs(t, err, ErrInvalidTransition)

	shuffling, err := session.StartShuffle(now)
	require.NoError(t, err)
	ready, err := shuffling.FinishShuffle(now)
	require.NoError(t, err)

	_, err = ready.LayOut(threeCardLayout(), drawn(2), now)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestTarotSessionReset(t *testing.T) {
	now := time.Now()
	session := NewTarotSession(uuid.New(), now)
	shuffling, err := session.StartShuffle(now)
	require.NoError(t, err)

	reset := shuffling.Reset(now)
	assert.Equal(t, TarotStateEmpty, reset.State)
	assert.Empty(t, reset.Cards)
}

func TestDrawnCardMeaning(t *testing.T) {
	card := DrawnCard{Card: TarotCard{ShortMeaning: "up", ReversedMeaning: "down"}, Orientation: OrientationUpright}
	assert.Equal(t, "up", card.Meaning())

	card.Orientation = OrientationReversed
	assert.Equal(t, "down", card.Meaning())

	card.Card.ReversedMeaning = ""
	assert.Equal(t, "up", card.Meaning())
}
