package fees

import (
	"testing"
	"time"

	"impound_manager/internal/models"
)

func testConfig() Config {
	return Config{
		DailyStorageRate: 2000,
		AdminFeeByType: map[models.ProcedureType]int64{
			models.ProcedureRelease:     10000,
			models.ProcedureSale:        15000,
			models.ProcedureDestruction: 5000,
		},
		PenaltyRatePerDay:    1000,
		PenaltyThresholdDays: 30,
		ClockSkewTolerance:   5 * time.Minute,
	}
}

func TestCalculateTenDaysRelease(t *testing.T) {
	impounded := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	at := impounded.Add(10 * 24 * time.Hour)

	b, err := Calculate(impounded, at, models.ProcedureRelease, testConfig())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if b.DaysImpounded != 10 {
		t.Fatalf("expected 10 days, got %d", b.DaysImpounded)
	}
	if b.StorageFees != 20000 || b.AdministrativeFees != 10000 || b.PenaltyFees != 0 {
		t.Fatalf("unexpected breakdown: %+v", b)
	}
	if b.TotalDue != 30000 {
		t.Fatalf("expected total 30000, got %d", b.TotalDue)
	}
}

func TestCalculatePenaltyBeyondThreshold(t *testing.T) {
	impounded := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	at := impounded.Add(35 * 24 * time.Hour)

	b, err := Calculate(impounded, at, models.ProcedureRelease, testConfig())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if b.StorageFees != 70000 {
		t.Fatalf("expected storage 70000, got %d", b.StorageFees)
	}
	if b.PenaltyFees != 5000 {
		t.Fatalf("expected penalty 5000, got %d", b.PenaltyFees)
	}
	if b.TotalDue != 85000 {
		t.Fatalf("expected total 85000, got %d", b.TotalDue)
	}
}

func TestDaysImpoundedCountsStartedDays(t *testing.T) {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		elapsed time.Duration
		want    int64
	}{
		{-time.Hour, 0},
		{0, 0},
		{time.Minute, 1},
		{24 * time.Hour, 1},
		{24*time.Hour + time.Minute, 2},
		{10 * 24 * time.Hour, 10},
	}
	for _, tc := range cases {
		if got := DaysImpounded(base, base.Add(tc.elapsed)); got != tc.want {
			t.Fatalf("DaysImpounded(+%v) = %d, want %d", tc.elapsed, got, tc.want)
		}
	}
}

func TestCalculatePartialDayRoundsUp(t *testing.T) {
	impounded := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	at := impounded.Add(24*time.Hour + time.Minute)

	b, err := Calculate(impounded, at, models.ProcedureDestruction, testConfig())
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if b.DaysImpounded != 2 {
		t.Fatalf("expected started day to count, got %d days", b.DaysImpounded)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	impounded := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	at := impounded.Add(12 * 24 * time.Hour)
	cfg := testConfig()

	a, err := Calculate(impounded, at, models.ProcedureSale, cfg)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	b, err := Calculate(impounded, at, models.ProcedureSale, cfg)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical results, got %+v vs %+v", a, b)
	}
}

func TestCalculateComponentsNonNegativeAndSum(t *testing.T) {
	impounded := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cfg := testConfig()

	prev := int64(-1)
	for days := 0; days <= 60; days += 5 {
		at := impounded.Add(time.Duration(days) * 24 * time.Hour)
		b, err := Calculate(impounded, at, models.ProcedureRelease, cfg)
		if err != nil {
			t.Fatalf("Calculate day %d: %v", days, err)
		}
		if b.StorageFees < 0 || b.AdministrativeFees < 0 || b.PenaltyFees < 0 {
			t.Fatalf("negative component at day %d: %+v", days, b)
		}
		if b.TotalDue != b.StorageFees+b.AdministrativeFees+b.PenaltyFees {
			t.Fatalf("total does not equal sum at day %d: %+v", days, b)
		}
		if b.TotalDue < prev {
			t.Fatalf("total decreased at day %d: %d < %d", days, b.TotalDue, prev)
		}
		prev = b.TotalDue
	}
}

func TestCalculateNegativeRateRejected(t *testing.T) {
	cfg := testConfig()
	cfg.DailyStorageRate = -1

	impounded := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := Calculate(impounded, impounded, models.ProcedureRelease, cfg)
	if err != ErrInvalidConfiguration {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}

	cfg = testConfig()
	cfg.AdminFeeByType[models.ProcedureSale] = -500
	_, err = Calculate(impounded, impounded, models.ProcedureRelease, cfg)
	if err != ErrInvalidConfiguration {
		t.Fatalf("expected ErrInvalidConfiguration for negative admin fee, got %v", err)
	}
}

func TestCalculateEvaluationBeforeImpound(t *testing.T) {
	cfg := testConfig()
	impounded := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	// Within skew tolerance: clamp to zero days.
	b, err := Calculate(impounded, impounded.Add(-time.Minute), models.ProcedureRelease, cfg)
	if err != nil {
		t.Fatalf("expected clamp within tolerance, got %v", err)
	}
	if b.DaysImpounded != 0 || b.StorageFees != 0 {
		t.Fatalf("expected zero days, got %+v", b)
	}

	// Beyond tolerance: reject.
	_, err = Calculate(impounded, impounded.Add(-time.Hour), models.ProcedureRelease, cfg)
	if err != ErrInvalidTimestamp {
		t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
	}
}
