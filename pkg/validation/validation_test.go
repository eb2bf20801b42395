package validation

import (
	"testing"
	"time"
)

func TestValidateWorkerCount(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{"valid minimum", 1, false},
		{"valid middle", 10, false},
		{"valid maximum", 20, false},
		{"too low", 0, true},
		{"negative", -1, true},
		{"too high", 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWorkerCount(tt.workers)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWorkerCount(%d) error = %v, wantErr %v", tt.workers, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNonEmptyString(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{"valid string", "username", "ada", false},
		{"empty string", "username", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonEmptyString(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonEmptyString(%q, %q) error = %v, wantErr %v", tt.fieldName, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCurrencyCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"valid USD", "USD", false},
		{"valid HKD", "HKD", false},
		{"lowercase", "usd", true},
		{"too short", "US", true},
		{"too long", "USDT", true},
		{"digits", "U5D", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCurrencyCode(tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCurrencyCode(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		wantErr bool
	}{
		{"valid amount", 100.50, false},
		{"small amount", 0.01, false},
		{"zero", 0, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAmount(%v) error = %v, wantErr %v", tt.amount, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDateRange(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		from    time.Time
		to      time.Time
		wantErr bool
	}{
		{"valid range", day(1), day(31), false},
		{"same day", day(15), day(15), false},
		{"reversed", day(31), day(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDateRange(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDateRange(%v, %v) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid date", "2026-08-01", false},
		{"wrong format", "01/08/2026", true},
		{"not a date", "yesterday", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate("from", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && got.Format("2006-01-02") != tt.value {
				t.Errorf("ParseDate(%q) = %v, want the same date back", tt.value, got)
			}
		})
	}
}
