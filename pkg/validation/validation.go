package validation

import (
	"fmt"
	"time"
)

const (
	MinWorkers = 1
	MaxWorkers = 20
)

func ValidateWorkerCount(workers int) error {
	if workers < MinWorkers || workers > MaxWorkers {
		return fmt.Errorf("worker count must be between %d and %d, got %d", MinWorkers, MaxWorkers, workers)
	}
	return nil
}

func ValidateNonEmptyString(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateCurrencyCode checks for an ISO 4217 style code: three uppercase letters.
func ValidateCurrencyCode(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("currency code must be 3 letters, got %q", code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("currency code must be uppercase letters, got %q", code)
		}
	}
	return nil
}

func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %v", amount)
	}
	return nil
}

// ValidateDateRange checks that from does not lie after to.
func ValidateDateRange(from, to time.Time) error {
	if from.After(to) {
		return fmt.Errorf("from date %s is after to date %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD flag value.
func ParseDate(fieldName, value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD format, got %q", fieldName, value)
	}
	return parsed, nil
}
