package engine

import (
	"errors"
	"testing"
	"time"
)

func TestValidateChronology(t *testing.T) {
	base := time.Date(2026, 7, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		landing time.Time
		wantErr bool
	}{
		{"landing after start", base, base.Add(45 * time.Minute), false},
		{"landing equals start", base, base, true},
		{"landing before start", base, base.Add(-1 * time.Minute), true},
		{"one second apart", base, base.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChronology(tt.start, tt.landing)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateChronology() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var toErr *TimeOrderError
				if !errors.As(err, &toErr) {
					t.Fatalf("expected *TimeOrderError, got %T", err)
				}
			}
		})
	}
}

func TestValidateChronologyIdempotent(t *testing.T) {
	start := time.Date(2026, 7, 14, 10, 0, 0, 0, time.UTC)
	landing := start.Add(2 * time.Hour)

	// Re-validating an already accepted pair must never start failing.
	for i := 0; i < 3; i++ {
		if err := ValidateChronology(start, landing); err != nil {
			t.Fatalf("revalidation %d failed: %v", i, err)
		}
	}
}
