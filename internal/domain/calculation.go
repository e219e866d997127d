package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AccessType уровень доступа к сохранённому прогнозу
type AccessType string

const (
	AccessPreview AccessType = "preview"
	AccessFull    AccessType = "full"
)

// Calculation сохранённый расчёт натальной карты с прогнозом
type Calculation struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"userId" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Name        string     `json:"name" db:"name"`
	BirthDate   string     `json:"birthDate" db:"birth_date"`
	BirthTime   string     `json:"birthTime" db:"birth_time"`
	BirthPlace  string     `json:"birthPlace" db:"birth_place"`
	Chart       NatalChart `json:"natalChart" db:"chart"` // JSONB
	Excerpt     string     `json:"excerpt" db:"excerpt"`
	FullContent string     `json:"-" db:"full_content"`
	AccessType  AccessType `json:"accessType" db:"access_type"`
	Price       int64      `json:"price" db:"price"`
	ReportPath  *string    `json:"-" db:"report_path"`
	CreatedAt   time.Time  `json:"date" db:"created_at"`
}

// Unlock открывает полный доступ к прогнозу
func (c *Calculation) Unlock() {
	c.AccessType = AccessFull
}

// Scan реализует sql.Scanner для JSONB колонки с картой
func (c *NatalChart) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		*c = NatalChart{}
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported natal chart type %T", value)
	}
	return json.Unmarshal(bytes, c)
}

// Value реализует driver.Valuer для сохранения карты в БД
func (c NatalChart) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// ChartCalculatedEvent событие о выполненном расчёте
type ChartCalculatedEvent struct {
	CalculationID *uuid.UUID `json:"calculation_id,omitempty"`
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	SunSign       Sign       `json:"sun_sign"`
	MoonSign      Sign       `json:"moon_sign"`
	RisingSign    Sign       `json:"rising_sign"`
	AspectsCount  int        `json:"aspects_count"`
	JulianDay     float64    `json:"julian_day"`
	CalculatedAt  time.Time  `json:"calculated_at"`
}
