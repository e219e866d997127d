package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus статус подписки пользователя
type SubscriptionStatus string

const (
	SubscriptionFree    SubscriptionStatus = "free"
	SubscriptionPremium SubscriptionStatus = "premium"
)

// AuthProvider способ входа
type AuthProvider string

const (
	AuthProviderEmail  AuthProvider = "email"
	AuthProviderVK     AuthProvider = "vk"
	AuthProviderGoogle AuthProvider = "google"
)

func (p AuthProvider) IsSocial() bool {
	return p == AuthProviderVK || p == AuthProviderGoogle
}

// UserSettings настройки приватности и уведомлений (JSONB)
type UserSettings struct {
	ProfileVisible     bool `json:"profileVisible"`
	HistoryVisible     bool `json:"historyVisible"`
	EmailNotifications bool `json:"emailNotifications"`
}

// DefaultUserSettings настройки нового пользователя
func DefaultUserSettings() UserSettings {
	return UserSettings{
		ProfileVisible:     true,
		HistoryVisible:     false,
		EmailNotifications: true,
	}
}

// Scan реализует sql.Scanner для сканирования JSONB из БД
func (s *UserSettings) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	}

	if len(bytes) == 0 {
		*s = DefaultUserSettings()
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// Value реализует driver.Valuer для сохранения в БД
func (s UserSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

type User struct {
	ID                    uuid.UUID          `json:"id" db:"id"`
	Name                  string             `json:"name" db:"name"`
	Email                 string             `json:"email" db:"email"`
	PasswordHash          string             `json:"-" db:"password_hash"`
	Provider              AuthProvider       `json:"provider" db:"provider"`
	SubscriptionStatus    SubscriptionStatus `json:"subscriptionStatus" db:"subscription_status"`
	SubscriptionExpiresAt *time.Time         `json:"subscriptionExpiresAt,omitempty" db:"subscription_expires_at"`
	Settings              UserSettings       `json:"settings" db:"settings"`
	CreatedAt             time.Time          `json:"registrationDate" db:"created_at"`
	UpdatedAt             time.Time          `json:"-" db:"updated_at"`
}

// HasActivePremium проверяет, действует ли премиум-подписка на момент now
func (u *User) HasActivePremium(now time.Time) bool {
	if u == nil || u.SubscriptionStatus != SubscriptionPremium {
		return false
	}
	return u.SubscriptionExpiresAt == nil || u.SubscriptionExpiresAt.After(now)
}

// ExtendPremium продлевает подписку на months месяцев от текущего окончания или от now
func (u *User) ExtendPremium(now time.Time, months int) {
	start := now
	if u.SubscriptionExpiresAt != nil && u.SubscriptionExpiresAt.After(now) {
		start = *u.SubscriptionExpiresAt
	}
	expires := start.AddDate(0, months, 0)
	u.SubscriptionStatus = SubscriptionPremium
	u.SubscriptionExpiresAt = &expires
	u.UpdatedAt = now
}

// Session выданная сессия
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// TokenClaims проверенные данные токена
type TokenClaims struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}
