package tarot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/cache"
	"github.com/google/uuid"
)

const sessionKeyPrefix = "tarot:session:"

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

// Layouts доступные расклады
func (s *Service) Layouts(ctx context.Context) ([]domain.SpreadLayout, error) {
	layouts, err := s.Deck.Layouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load layouts: %w", err)
	}
	return layouts, nil
}

// CreateSession создаёт пустую сессию расклада
func (s *Service) CreateSession(ctx context.Context) (*domain.TarotSession, error) {
	session := domain.NewTarotSession(uuid.New(), s.Now().UTC())
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.Log.Debug("tarot session created", "session_id", session.ID)
	return &session, nil
}

// GetSession возвращает сессию. Полное толкование карт видно только премиум-пользователю
func (s *Service) GetSession(ctx context.Context, id uuid.UUID, user *domain.User) (*domain.TarotSession, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.present(session, user)
	return &view, nil
}

// Shuffle перемешивает колоду: сессия сразу переходит в shuffling,
// после задержки в ready. При отмене ctx сессия сбрасывается
func (s *Service) Shuffle(ctx context.Context, id uuid.UUID) (*domain.TarotSession, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	shuffling, err := session.StartShuffle(s.Now().UTC())
	if err != nil {
		return nil, domain.WrapBusinessError(err)
	}
	if err := s.save(ctx, shuffling); err != nil {
		return nil, err
	}

	if err := s.wait(ctx); err != nil {
		// ctx уже отменён, сохраняем сброс с отдельным контекстом
		resetCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if saveErr := s.save(resetCtx, shuffling.Reset(s.Now().UTC())); saveErr != nil {
			s.Log.Warn("failed to reset interrupted shuffle",
				"error", saveErr,
				"session_id", id,
			)
		}
		return nil, fmt.Errorf("shuffle interrupted: %w", err)
	}

	ready, err := shuffling.FinishShuffle(s.Now().UTC())
	if err != nil {
		return nil, domain.WrapBusinessError(err)
	}
	if err := s.save(ctx, ready); err != nil {
		return nil, err
	}

	return &ready, nil
}

// Draw выкладывает карты в расклад spreadID
func (s *Service) Draw(ctx context.Context, id uuid.UUID, spreadID string, user *domain.User) (*domain.TarotSession, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.State != domain.TarotStateReady {
		return nil, domain.WrapBusinessError(fmt.Errorf("%w: deck must be shuffled before drawing (state %s)", domain.ErrInvalidTransition, session.State))
	}

	layout, err := s.Deck.Layout(ctx, spreadID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapBusinessError(fmt.Errorf("%w: unknown spread %q", domain.ErrInvalidInput, spreadID))
		}
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}

	cards, err := s.Deck.Cards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}

	drawn, err := DealCards(cards, layout, s.RNG)
	if err != nil {
		return nil, err
	}

	laidOut, err := session.LayOut(layout, drawn, s.Now().UTC())
	if err != nil {
		return nil, domain.WrapBusinessError(err)
	}
	if err := s.save(ctx, laidOut); err != nil {
		return nil, err
	}

	s.Log.Info("tarot spread laid out",
		"session_id", id,
		"spread", spreadID,
		"cards", len(drawn),
	)

	view := s.present(laidOut, user)
	return &view, nil
}

// Reset возвращает сессию в начальное состояние
func (s *Service) Reset(ctx context.Context, id uuid.UUID) (*domain.TarotSession, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	reset := session.Reset(s.Now().UTC())
	if err := s.save(ctx, reset); err != nil {
		return nil, err
	}
	return &reset, nil
}

// present скрывает полное толкование для пользователей без активной подписки
func (s *Service) present(session domain.TarotSession, user *domain.User) domain.TarotSession {
	if user.HasActivePremium(s.Now()) {
		return session
	}

	cards := make([]domain.DrawnCard, len(session.Cards))
	for i, card := range session.Cards {
		card.Card.FullInterpretation = ""
		cards[i] = card
	}
	session.Cards = cards
	return session
}

func (s *Service) wait(ctx context.Context) error {
	if s.Cfg.ShuffleDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.Cfg.ShuffleDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (domain.TarotSession, error) {
	raw, err := s.Cache.Get(ctx, sessionKey(id))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return domain.TarotSession{}, domain.WrapBusinessError(fmt.Errorf("tarot session %s: %w", id, domain.ErrNotFound))
		}
		return domain.TarotSession{}, fmt.Errorf("failed to load tarot session: %w", err)
	}

	var session domain.TarotSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return domain.TarotSession{}, fmt.Errorf("failed to decode tarot session: %w", err)
	}
	return session, nil
}

func (s *Service) save(ctx context.Context, session domain.TarotSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode tarot session: %w", err)
	}
	if err := s.Cache.Set(ctx, sessionKey(session.ID), string(raw), s.Cfg.SessionTTL); err != nil {
		return fmt.Errorf("failed to save tarot session: %w", err)
	}
	return nil
}
