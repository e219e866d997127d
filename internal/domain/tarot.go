package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TarotCard карта колоды
type TarotCard struct {
	ID                 string `json:"id" yaml:"id"`
	Number             int    `json:"number" yaml:"number"`
	Name               string `json:"name" yaml:"name"`
	NameRu             string `json:"nameRu" yaml:"name_ru"`
	Arcana             string `json:"arcana" yaml:"arcana"`
	ShortMeaning       string `json:"shortMeaning" yaml:"short_meaning"`
	ReversedMeaning    string `json:"reversedMeaning" yaml:"reversed_meaning"`
	FullInterpretation string `json:"fullInterpretation,omitempty" yaml:"full_interpretation"`
}

// SpreadPosition позиция в раскладе
type SpreadPosition struct {
	Index       int    `json:"index" yaml:"index"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// SpreadLayout тип расклада
type SpreadLayout struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description" yaml:"description"`
	Positions   []SpreadPosition `json:"positions" yaml:"positions"`
}

// Orientation положение карты
type Orientation string

const (
	OrientationUpright  Orientation = "upright"
	OrientationReversed Orientation = "reversed"
)

// DrawnCard карта, выложенная на позицию
type DrawnCard struct {
	Position    SpreadPosition `json:"position"`
	Card        TarotCard      `json:"card"`
	Orientation Orientation    `json:"orientation"`
}

// Meaning значение карты с учётом положения
func (d DrawnCard) Meaning() string {
	if d.Orientation == OrientationReversed && d.Card.ReversedMeaning != "" {
		return d.Card.ReversedMeaning
	}
	return d.Card.ShortMeaning
}

// TarotState состояние сессии расклада
type TarotState string

const (
	TarotStateEmpty     TarotState = "empty"
	TarotStateShuffling TarotState = "shuffling"
	TarotStateReady     TarotState = "ready"
	TarotStateLaidOut   TarotState = "laid_out"
)

// TarotSession сериализуемое состояние расклада. Переходы не мутируют исходное значение
type TarotSession struct {
	ID        uuid.UUID   `json:"id"`
	State     TarotState  `json:"state"`
	SpreadID  string      `json:"spreadId,omitempty"`
	Cards     []DrawnCard `json:"cards"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewTarotSession создаёт пустую сессию
func NewTarotSession(id uuid.UUID, now time.Time) TarotSession {
	return TarotSession{
		ID:        id,
		State:     TarotStateEmpty,
		Cards:     []DrawnCard{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StartShuffle начинает перемешивание. Выложенные карты убираются
func (s TarotSession) StartShuffle(now time.Time) (TarotSession, error) {
	if s.State == TarotStateShuffling {
		return s, fmt.Errorf("%w: deck is already shuffling", ErrInvalidTransition)
	}
	s.State = TarotStateShuffling
	s.SpreadID = ""
	s.Cards = []DrawnCard{}
	s.UpdatedAt = now
	return s, nil
}

// FinishShuffle завершает перемешивание
func (s TarotSession) FinishShuffle(now time.Time) (TarotSession, error) {
	if s.State != TarotStateShuffling {
		return s, fmt.Errorf("%w: deck is not shuffling (state %s)", ErrInvalidTransition, s.State)
	}
	s.State = TarotStateReady
	s.UpdatedAt = now
	return s, nil
}

// LayOut выкладывает карты на позиции расклада
func (s TarotSession) LayOut(layout SpreadLayout, cards []DrawnCard, now time.Time) (TarotSession, error) {
	if s.State != TarotStateReady {
		return s, fmt.Errorf("%w: deck must be shuffled before drawing (state %s)", ErrInvalidTransition, s.State)
	}
	if len(cards) != len(layout.Positions) {
		return s, fmt.Errorf("%w: spread %s needs %d cards, got %d", ErrInvalidInput, layout.ID, len(layout.Positions), len(cards))
	}
	s.State = TarotStateLaidOut
	s.SpreadID = layout.ID
	s.Cards = append([]DrawnCard(nil), cards...)
	s.UpdatedAt = now
	return s, nil
}

// Reset возвращает сессию в начальное состояние из любого состояния
func (s TarotSession) Reset(now time.Time) TarotSession {
	s.State = TarotStateEmpty
	s.SpreadID = ""
	s.Cards = []DrawnCard{}
	s.UpdatedAt = now
	return s
}
