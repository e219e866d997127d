package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodSBP      PaymentMethod = "sbp"
	PaymentMethodYooMoney PaymentMethod = "yoomoney"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodSBP, PaymentMethodYooMoney:
		return true
	}
	return false
}

// PaymentMethodInfo описание способа оплаты для витрины
type PaymentMethodInfo struct {
	ID          PaymentMethod `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

// PaymentMethods доступные способы оплаты
var PaymentMethods = []PaymentMethodInfo{
	{ID: PaymentMethodCard, Name: "Банковская карта", Description: "Visa, MasterCard, МИР"},
	{ID: PaymentMethodSBP, Name: "СБП", Description: "Система быстрых платежей"},
	{ID: PaymentMethodYooMoney, Name: "ЮMoney", Description: "Электронный кошелёк"},
}

// PlanID тариф
type PlanID string

const (
	PlanSingle  PlanID = "single"
	PlanPremium PlanID = "premium"
)

// PricingPlan тариф на витрине
type PricingPlan struct {
	ID            PlanID   `json:"id"`
	Name          string   `json:"name"`
	Price         int64    `json:"price"`
	OriginalPrice *int64   `json:"originalPrice,omitempty"`
	Period        string   `json:"period,omitempty"`
	Currency      string   `json:"currency"`
	Features      []string `json:"features"`
	Popular       bool     `json:"popular"`
}

// PaymentStatus статус платежа
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"   // создан, ожидает оплаты
	PaymentStatusSucceeded PaymentStatus = "succeeded" // успешно оплачен
	PaymentStatusFailed    PaymentStatus = "failed"    // оплата не прошла
	PaymentStatusRefunded  PaymentStatus = "refunded"  // возврат средств
)

func (s PaymentStatus) IsFinal() bool {
	return s != PaymentStatusPending
}

// PaymentMetadata метаданные платежа (JSONB) с поддержкой sql.Scanner
type PaymentMetadata map[string]interface{}

// Scan реализует sql.Scanner для сканирования JSONB из БД
func (m *PaymentMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = make(PaymentMetadata)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*m = make(PaymentMetadata)
		return nil
	}

	if len(bytes) == 0 {
		*m = make(PaymentMetadata)
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Value реализует driver.Valuer для сохранения в БД
func (m PaymentMetadata) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Payment платёж в системе
type Payment struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	UserID       uuid.UUID       `json:"userId" db:"user_id"`
	PlanID       PlanID          `json:"planId" db:"plan_id"`
	PredictionID *uuid.UUID      `json:"predictionId,omitempty" db:"prediction_id"` // для разовой покупки
	Amount       int64           `json:"amount" db:"amount"`                        // в рублях
	Currency     string          `json:"currency" db:"currency"`
	Method       PaymentMethod   `json:"method" db:"method"`
	ProviderID   string          `json:"providerId" db:"provider_id"`
	Status       PaymentStatus   `json:"status" db:"status"`
	Metadata     PaymentMetadata `json:"metadata,omitempty" db:"metadata"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	SucceededAt  *time.Time      `json:"succeededAt,omitempty" db:"succeeded_at"`
	FailedAt     *time.Time      `json:"failedAt,omitempty" db:"failed_at"`
	ErrorMessage *string         `json:"errorMessage,omitempty" db:"error_message"`
}

// PaymentEvent событие о смене статуса платежа
type PaymentEvent struct {
	PaymentID uuid.UUID     `json:"payment_id"`
	Status    PaymentStatus `json:"status"`
	Reason    string        `json:"reason,omitempty"`
}
