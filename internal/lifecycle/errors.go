package lifecycle

import "errors"

var (
	ErrNotFound                 = errors.New("lifecycle: record not found")
	ErrInvalidVehicleState      = errors.New("lifecycle: vehicle is not impounded")
	ErrActiveProcedure          = errors.New("lifecycle: vehicle already has an active procedure")
	ErrInvalidTransition        = errors.New("lifecycle: invalid procedure status transition")
	ErrIllegalVehicleTransition = errors.New("lifecycle: illegal vehicle status transition")
	ErrOutstandingBalance       = errors.New("lifecycle: procedure has an outstanding balance")
	ErrProcedureClosed          = errors.New("lifecycle: procedure is completed or cancelled")
	ErrInvalidAmount            = errors.New("lifecycle: payment amount must be positive")
)
