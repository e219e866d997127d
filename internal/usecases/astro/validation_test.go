package astro

import (
	"testing"
	"time"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() domain.BirthInput {
	return domain.BirthInput{
		Name:       "Анна",
		BirthDate:  "1990-05-15",
		BirthTime:  "14:30",
		BirthPlace: "Москва, Россия",
	}
}

func TestParseBirthInput(t *testing.T) {
	instant, err := ParseBirthInput(validInput())
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 5, 15, 14, 30, 0, 0, time.UTC), instant)
}

func TestParseBirthInputRejects(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*domain.BirthInput)
	}{
		{name: "missing date", modify: func(in *domain.BirthInput) { in.BirthDate = "" }},
		{name: "missing time", modify: func(in *domain.BirthInput) { in.BirthTime = "" }},
		{name: "missing place", modify: func(in *domain.BirthInput) { in.BirthPlace = "" }},
		{name: "missing name", modify: func(in *domain.BirthInput) { in.Name = "" }},
		{name: "date format", modify: func(in *domain.BirthInput) { in.BirthDate = "15.05.1990" }},
		{name: "short date", modify: func(in *domain.BirthInput) { in.BirthDate = "1990-5-15" }},
		{name: "time with seconds", modify: func(in *domain.BirthInput) { in.BirthTime = "14:30:00" }},
		{name: "one letter name", modify: func(in *domain.BirthInput) { in.Name = "A" }},
		{name: "one cyrillic letter", modify: func(in *domain.BirthInput) { in.Name = "Я" }},
		{name: "month 13", modify: func(in *domain.BirthInput) { in.BirthDate = "2024-13-01" }},
		{name: "february 30", modify: func(in *domain.BirthInput) { in.BirthDate = "2023-02-30" }},
		{name: "hour 25", modify: func(in *domain.BirthInput) { in.BirthTime = "25:00" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.modify(&in)

			_, err := ParseBirthInput(in)
			require.ErrorIs(t, err, domain.ErrInvalidBirthData)
		})
	}
}

func TestParseBirthInputTwoLetterName(t *testing.T) {
	in := validInput()
	in.Name = "Ян"

	_, err := ParseBirthInput(in)
	require.NoError(t, err)
}
