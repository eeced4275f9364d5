package controllers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_vehicles_license_plate"}
	if !isUniqueViolation(dup) {
		t.Fatalf("expected a 23505 PgError to be recognized")
	}

	// gorm wraps driver errors; errors.As must still find the PgError.
	if !isUniqueViolation(fmt.Errorf("create vehicle: %w", dup)) {
		t.Fatalf("expected a wrapped 23505 PgError to be recognized")
	}

	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign-key violation must not map to conflict")
	}
	if isUniqueViolation(errors.New("record not found")) {
		t.Fatalf("plain errors must not map to conflict")
	}
	if isUniqueViolation(nil) {
		t.Fatalf("nil must not map to conflict")
	}
}
