package astro

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
)

const (
	minNameLength = 2
	instantLayout = "2006-01-02T15:04"
)

var (
	birthDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	birthTimeRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ParseBirthInput проверяет данные рождения и возвращает момент рождения в UTC
func ParseBirthInput(in domain.BirthInput) (time.Time, error) {
	var missing []string
	if in.BirthDate == "" {
		missing = append(missing, "birthDate")
	}
	if in.BirthTime == "" {
		missing = append(missing, "birthTime")
	}
	if in.BirthPlace == "" {
		missing = append(missing, "birthPlace")
	}
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return time.Time{}, fmt.Errorf("%w: missing %s", domain.ErrInvalidBirthData, strings.Join(missing, ", "))
	}

	if !birthDateRegex.MatchString(in.BirthDate) {
		return time.Time{}, fmt.Errorf("%w: birthDate %q is not YYYY-MM-DD", domain.ErrInvalidBirthData, in.BirthDate)
	}
	if !birthTimeRegex.MatchString(in.BirthTime) {
		return time.Time{}, fmt.Errorf("%w: birthTime %q is not HH:MM", domain.ErrInvalidBirthData, in.BirthTime)
	}
	if utf8.RuneCountInString(in.Name) < minNameLength {
		return time.Time{}, fmt.Errorf("%w: name is shorter than %d characters", domain.ErrInvalidBirthData, minNameLength)
	}

	// регулярки пропускают 2024-13-01 и 25:00, календарь нет
	instant, err := time.Parse(instantLayout, in.BirthDate+"T"+in.BirthTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", domain.ErrInvalidBirthData, err)
	}

	return instant.UTC(), nil
}
