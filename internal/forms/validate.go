package forms

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var ErrValidation = errors.New("validation failed")

// ValidationError carries the message to re-prompt the user with. The
// draft is never mutated when a validator rejects input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Validator checks a raw user value and returns the normalized form that
// gets stored in the draft. Validators are pure: same input, same result.
type Validator func(value string) (string, error)

// MinLength requires at least n runes after trimming.
func MinLength(n int) Validator {
	return func(value string) (string, error) {
		trimmed := strings.TrimSpace(value)
		if utf8.RuneCountInString(trimmed) < n {
			return "", invalid("текст слишком короткий, минимум %d символов", n)
		}
		return trimmed, nil
	}
}

// Choice requires the value to match one of the options, case-insensitively.
// The stored value is the canonical option spelling.
func Choice(options ...string) Validator {
	return func(value string) (string, error) {
		trimmed := strings.TrimSpace(value)
		for _, option := range options {
			if strings.EqualFold(trimmed, option) {
				return option, nil
			}
		}
		return "", invalid("выберите один из вариантов: %s", strings.Join(options, ", "))
	}
}

// YesNo accepts a handful of affirmative and negative spellings and
// normalizes to "yes"/"no".
func YesNo() Validator {
	return func(value string) (string, error) {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "yes", "y", "да", "+":
			return "yes", nil
		case "no", "n", "нет", "-":
			return "no", nil
		}
		return "", invalid("ответьте «да» или «нет»")
	}
}

// Optional lets the user skip a step with "-" or "skip"; otherwise the
// wrapped validator applies. A skipped step stores an empty value.
func Optional(inner Validator) Validator {
	return func(value string) (string, error) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "-" || strings.EqualFold(trimmed, "skip") || strings.EqualFold(trimmed, "пропустить") {
			return "", nil
		}
		return inner(value)
	}
}

// Number requires a single positive integer (spaces allowed as thousand
// separators).
func Number() Validator {
	return func(value string) (string, error) {
		n, err := parseAmount(value)
		if err != nil {
			return "", invalid("введите число, например 60000")
		}
		return strconv.FormatInt(n, 10), nil
	}
}

// Duration requires one of the allowed publication durations in days.
func Duration(allowed []int) Validator {
	return func(value string) (string, error) {
		trimmed := strings.TrimSpace(value)
		n, err := strconv.Atoi(trimmed)
		if err == nil {
			for _, d := range allowed {
				if n == d {
					return strconv.Itoa(d), nil
				}
			}
		}
		parts := make([]string, len(allowed))
		for i, d := range allowed {
			parts[i] = strconv.Itoa(d)
		}
		return "", invalid("выберите срок публикации: %s дней", strings.Join(parts, ", "))
	}
}

var rangePattern = regexp.MustCompile(`(?i)^\s*(?:от\s+|from\s+)?([\d\s]+?)\s*(?:до|to|-|–)\s*([\d\s]+?)\s*$`)

// SalaryRange accepts a single number ("60000") or a range written as
// "from 50000 to 80000", "от 50000 до 80000" or "50000 - 80000". The
// normalized form is "min" or "min-max"; a range with min > max is rejected.
func SalaryRange() Validator {
	return func(value string) (string, error) {
		if m := rangePattern.FindStringSubmatch(value); m != nil {
			lo, errLo := parseAmount(m[1])
			hi, errHi := parseAmount(m[2])
			if errLo != nil || errHi != nil {
				return "", invalid("не удалось разобрать диапазон зарплаты")
			}
			if lo > hi {
				return "", invalid("нижняя граница зарплаты больше верхней")
			}
			return fmt.Sprintf("%d-%d", lo, hi), nil
		}
		n, err := parseAmount(value)
		if err != nil {
			return "", invalid("введите зарплату числом или диапазоном, например «от 50000 до 80000»")
		}
		return strconv.FormatInt(n, 10), nil
	}
}

// ParseSalaryBand splits the normalized SalaryRange value back into its
// bounds. A single number yields min only; empty input yields neither.
func ParseSalaryBand(stored string) (min, max *int64) {
	if stored == "" {
		return nil, nil
	}
	lo, hi, found := strings.Cut(stored, "-")
	loVal, err := strconv.ParseInt(lo, 10, 64)
	if err != nil {
		return nil, nil
	}
	min = &loVal
	if found {
		if hiVal, err := strconv.ParseInt(hi, 10, 64); err == nil {
			max = &hiVal
		}
	}
	return min, max
}

func parseAmount(value string) (int64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(value))
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid amount %q", value)
	}
	return n, nil
}
