package tarot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/storage/inmemory"
	deckstore "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/tarot"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/pkg/random"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// constRNG Intn возвращает min(value, n-1)
type constRNG struct {
	value int
}

func (r constRNG) Intn(n int) int {
	if r.value >= n {
		return n - 1
	}
	return r.value
}

func (r constRNG) Float64() float64 {
	return 0
}

func testDeck(n int) []domain.TarotCard {
	cards := make([]domain.TarotCard, n)
	for i := range cards {
		cards[i] = domain.TarotCard{
			ID:                 fmt.Sprintf("card-%d", i),
			Number:             i,
			ShortMeaning:       "short",
			ReversedMeaning:    "reversed",
			FullInterpretation: "full",
		}
	}
	return cards
}

func testLayout(n int) domain.SpreadLayout {
	layout := domain.SpreadLayout{ID: fmt.Sprintf("layout-%d", n)}
	for i := 1; i <= n; i++ {
		layout.Positions = append(layout.Positions, domain.SpreadPosition{Index: i, Name: fmt.Sprintf("pos %d", i)})
	}
	return layout
}

func newTestService(delay time.Duration) *Service {
	return New(deckstore.NewEmbeddedStore(), inmemory.NewCache(), random.New(), Config{ShuffleDelay: delay}, testLogger())
}

func premiumUser() *domain.User {
	expires := time.Now().Add(24 * time.Hour)
	return &domain.User{
		ID:                    uuid.New(),
		SubscriptionStatus:    domain.SubscriptionPremium,
		SubscriptionExpiresAt: &expires,
	}
}

func TestDealCardsDistinct(t *testing.T) {
	cards := testDeck(22)
	layout := testLayout(10)
	rng := random.New()

	for i := 0; i < 200; i++ {
		drawn, err := DealCards(cards, layout, rng)
		require.NoError(t, err)
		require.Len(t, drawn, 10)

		seen := map[string]bool{}
		for j, card := range drawn {
			assert.Equal(t, layout.Positions[j], card.Position)
			assert.False(t, seen[card.Card.ID], "card %s dealt twice", card.Card.ID)
			seen[card.Card.ID] = true
		}
	}
}

func TestDealCardsDeterministic(t *testing.T) {
	cards := testDeck(5)

	drawn, err := DealCards(cards, testLayout(3), constRNG{value: 0})
	require.NoError(t, err)
	for i, card := range drawn {
		assert.Equal(t, cards[i].ID, card.Card.ID)
		assert.Equal(t, domain.OrientationUpright, card.Orientation)
	}

	drawn, err = DealCards(cards, testLayout(3), constRNG{value: 100})
	require.NoError(t, err)
	assert.Equal(t, "card-4", drawn[0].Card.ID)
	for _, card := range drawn {
		assert.Equal(t, domain.OrientationReversed, card.Orientation)
		assert.Equal(t, "reversed", card.Meaning())
	}
}

func TestDealCardsErrors(t *testing.T) {
	_, err := DealCards(testDeck(3), testLayout(5), constRNG{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = DealCards(testDeck(3), domain.SpreadLayout{ID: "empty"}, constRNG{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(0)

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TarotStateEmpty, session.State)

	_, err = svc.Draw(ctx, session.ID, "three-card", nil)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, domain.IsBusinessError(err))

	ready, err := svc.Shuffle(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TarotStateReady, ready.State)

	laidOut, err := svc.Draw(ctx, session.ID, "three-card", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.TarotStateLaidOut, laidOut.State)
	assert.Equal(t, "three-card", laidOut.SpreadID)
	require.Len(t, laidOut.Cards, 3)
	assert.Equal(t, "Прошлое", laidOut.Cards[0].Position.Name)
	for _, card := range laidOut.Cards {
		assert.Empty(t, card.Card.FullInterpretation)
		assert.NotEmpty(t, card.Card.ShortMeaning)
	}

	// повторный расклад без перемешивания запрещён
	_, err = svc.Draw(ctx, session.ID, "love", nil)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	reset, err := svc.Reset(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TarotStateEmpty, reset.State)
	assert.Empty(t, reset.Cards)
	assert.Empty(t, reset.SpreadID)
}

func TestPremiumSeesFullInterpretation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(0)
	user := premiumUser()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.Shuffle(ctx, session.ID)
	require.NoError(t, err)

	laidOut, err := svc.Draw(ctx, session.ID, "celtic-cross", user)
	require.NoError(t, err)
	require.Len(t, laidOut.Cards, 10)
	for _, card := range laidOut.Cards {
		assert.NotEmpty(t, card.Card.FullInterpretation)
	}

	// без подписки та же сессия отдаётся без толкования
	anonymous, err := svc.GetSession(ctx, session.ID, nil)
	require.NoError(t, err)
	for _, card := range anonymous.Cards {
		assert.Empty(t, card.Card.FullInterpretation)
	}

	premium, err := svc.GetSession(ctx, session.ID, user)
	require.NoError(t, err)
	assert.NotEmpty(t, premium.Cards[0].Card.FullInterpretation)
}

func TestShuffleInterrupted(t *testing.T) {
	svc := newTestService(time.Hour)

	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = svc.Shuffle(ctx, session.ID)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	current, err := svc.GetSession(context.Background(), session.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.TarotStateEmpty, current.State)
}

func TestShuffleWaitsDelay(t *testing.T) {
	svc := newTestService(30 * time.Millisecond)

	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	started := time.Now()
	ready, err := svc.Shuffle(context.Background(), session.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(started), 30*time.Millisecond)
	assert.Equal(t, domain.TarotStateReady, ready.State)
}

func TestUnknownSessionAndSpread(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(0)

	_, err := svc.GetSession(ctx, uuid.New(), nil)
	require.ErrorIs(t, err, domain.ErrNotFound)

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.Shuffle(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.Draw(ctx, session.ID, "horseshoe", nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLayouts(t *testing.T) {
	layouts, err := newTestService(0).Layouts(context.Background())
	require.NoError(t, err)
	assert.Len(t, layouts, 3)
}
