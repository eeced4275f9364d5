// Package lifecycle governs the procedure state machine, the vehicle status
// it drives, and the payment ledger gating completion.
package lifecycle

import "impound_manager/internal/models"

// AllowedProcedureTransition is the directed graph of procedure statuses.
// completed and cancelled are terminal.
var AllowedProcedureTransition = map[models.ProcedureStatus][]models.ProcedureStatus{
	models.ProcedurePending:    {models.ProcedureInProgress, models.ProcedureCancelled},
	models.ProcedureInProgress: {models.ProcedureCompleted, models.ProcedureCancelled},
	models.ProcedureCompleted:  {},
	models.ProcedureCancelled:  {},
}

// AllowedVehicleTransition is the directed graph of vehicle statuses. A
// vehicle only leaves impounded through a completed procedure (or an explicit
// administrative override); claimed, sold and destroyed are terminal.
var AllowedVehicleTransition = map[models.VehicleStatus][]models.VehicleStatus{
	models.VehicleImpounded: {
		models.VehicleClaimed,
		models.VehicleSold,
		models.VehicleDestroyed,
		models.VehiclePendingDestruction,
	},
	models.VehiclePendingDestruction: {models.VehicleDestroyed},
	models.VehicleClaimed:            {},
	models.VehicleSold:               {},
	models.VehicleDestroyed:          {},
}

// CanTransitionProcedure reports whether from -> to is an allowed procedure
// status change.
func CanTransitionProcedure(from, to models.ProcedureStatus) bool {
	for _, s := range AllowedProcedureTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanTransitionVehicle reports whether from -> to is an allowed vehicle
// status change.
func CanTransitionVehicle(from, to models.VehicleStatus) bool {
	for _, s := range AllowedVehicleTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}
