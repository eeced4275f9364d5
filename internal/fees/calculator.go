// Package fees derives the amount owed on an impounded vehicle from how long
// it has been held and which administrative procedure is being run against it.
package fees

import (
	"errors"
	"time"

	"impound_manager/internal/models"
)

var (
	ErrInvalidConfiguration = errors.New("fees: invalid configuration")
	ErrInvalidTimestamp     = errors.New("fees: evaluation date precedes impound date")
)

// Config carries the tunable rates, all in minor currency units.
// AdminFeeByType maps a procedure type to its flat administrative fee.
type Config struct {
	DailyStorageRate     int64
	AdminFeeByType       map[models.ProcedureType]int64
	PenaltyRatePerDay    int64
	PenaltyThresholdDays int64
	// ClockSkewTolerance covers evaluation timestamps slightly behind the
	// impound timestamp (distributed clocks). Within the tolerance days
	// clamp to zero; beyond it the input is rejected.
	ClockSkewTolerance time.Duration
}

// Breakdown decomposes the total owed.
type Breakdown struct {
	DaysImpounded      int64 `json:"days_impounded"`
	StorageFees        int64 `json:"storage_fees"`
	AdministrativeFees int64 `json:"administrative_fees"`
	PenaltyFees        int64 `json:"penalty_fees"`
	TotalDue           int64 `json:"total_due"`
}

// Validate rejects any negative rate.
func (c Config) Validate() error {
	if c.DailyStorageRate < 0 || c.PenaltyRatePerDay < 0 || c.PenaltyThresholdDays < 0 {
		return ErrInvalidConfiguration
	}
	for _, fee := range c.AdminFeeByType {
		if fee < 0 {
			return ErrInvalidConfiguration
		}
	}
	return nil
}

// DaysImpounded counts held days; any started day counts in full, and a
// negative elapsed time clamps to zero. Shared by the calculator and the
// deadline-warning path so both quote the same day number.
func DaysImpounded(impoundedAt, at time.Time) int64 {
	elapsed := at.Sub(impoundedAt)
	if elapsed <= 0 {
		return 0
	}
	days := int64(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Calculate produces the fee breakdown for a vehicle impounded at impoundedAt,
// evaluated at `at`, for the given procedure type. Deterministic and monotone
// in the number of days held; no component is ever negative.
func Calculate(impoundedAt, at time.Time, procType models.ProcedureType, cfg Config) (Breakdown, error) {
	if err := cfg.Validate(); err != nil {
		return Breakdown{}, err
	}

	if elapsed := at.Sub(impoundedAt); elapsed < 0 && -elapsed > cfg.ClockSkewTolerance {
		return Breakdown{}, ErrInvalidTimestamp
	}

	days := DaysImpounded(impoundedAt, at)

	b := Breakdown{
		DaysImpounded:      days,
		StorageFees:        days * cfg.DailyStorageRate,
		AdministrativeFees: cfg.AdminFeeByType[procType],
	}
	if days > cfg.PenaltyThresholdDays {
		b.PenaltyFees = (days - cfg.PenaltyThresholdDays) * cfg.PenaltyRatePerDay
	}
	b.TotalDue = b.StorageFees + b.AdministrativeFees + b.PenaltyFees
	return b, nil
}
