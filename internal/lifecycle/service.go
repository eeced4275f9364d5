package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"impound_manager/internal/fees"
	"impound_manager/internal/models"
)

// Repository is the data access the service needs. The gorm implementation
// runs each InTx body in a database transaction with row locks on the reads;
// tests substitute a fake.
type Repository interface {
	InTx(ctx context.Context, fn func(Repository) error) error

	GetVehicle(ctx context.Context, id uint) (models.Vehicle, error)
	UpdateVehicleStatus(ctx context.Context, id uint, status models.VehicleStatus) error

	GetProcedure(ctx context.Context, id uint) (models.Procedure, error)
	HasActiveProcedure(ctx context.Context, vehicleID uint) (bool, error)
	CreateProcedure(ctx context.Context, p *models.Procedure) error
	SaveProcedure(ctx context.Context, p *models.Procedure) error

	CreatePayment(ctx context.Context, p *models.Payment) error
	SumPayments(ctx context.Context, procedureID uint) (int64, error)
}

// FeeConfigSource supplies the current rate configuration; satisfied by
// settings.Store.
type FeeConfigSource interface {
	FeeConfig() (fees.Config, error)
}

// StatusNotifier is told, best effort, that a vehicle changed status. Failures
// inside the notifier never affect the triggering transition.
type StatusNotifier interface {
	VehicleStatusChanged(vehicle models.Vehicle, procedure models.Procedure)
}

type Service struct {
	repo     Repository
	rates    FeeConfigSource
	notifier StatusNotifier // optional
	now      func() time.Time
}

func NewService(repo Repository, rates FeeConfigSource, notifier StatusNotifier) *Service {
	return &Service{repo: repo, rates: rates, notifier: notifier, now: time.Now}
}

// Open creates a pending procedure against an impounded vehicle and stores the
// fee estimate computed at open time as its cost. At most one non-terminal
// procedure may exist per vehicle.
func (s *Service) Open(ctx context.Context, vehicleID uint, procType models.ProcedureType, creatorID uint) (models.Procedure, error) {
	var proc models.Procedure
	err := s.repo.InTx(ctx, func(r Repository) error {
		vehicle, err := r.GetVehicle(ctx, vehicleID)
		if err != nil {
			return err
		}
		if vehicle.Status != models.VehicleImpounded {
			return ErrInvalidVehicleState
		}

		active, err := r.HasActiveProcedure(ctx, vehicleID)
		if err != nil {
			return err
		}
		if active {
			return ErrActiveProcedure
		}

		cfg, err := s.rates.FeeConfig()
		if err != nil {
			return err
		}
		breakdown, err := fees.Calculate(vehicle.ImpoundedAt, s.now(), procType, cfg)
		if err != nil {
			return err
		}

		proc = models.Procedure{
			VehicleID:   vehicleID,
			Type:        procType,
			Status:      models.ProcedurePending,
			Cost:        breakdown.TotalDue,
			CreatedByID: creatorID,
		}
		return r.CreateProcedure(ctx, &proc)
	})
	return proc, err
}

// Advance moves a pending procedure into in_progress.
func (s *Service) Advance(ctx context.Context, procedureID uint) (models.Procedure, error) {
	var proc models.Procedure
	err := s.repo.InTx(ctx, func(r Repository) error {
		p, err := r.GetProcedure(ctx, procedureID)
		if err != nil {
			return err
		}
		if !CanTransitionProcedure(p.Status, models.ProcedureInProgress) {
			return ErrInvalidTransition
		}
		now := s.now()
		p.Status = models.ProcedureInProgress
		p.StartedAt = &now
		proc = p
		return r.SaveProcedure(ctx, &p)
	})
	return proc, err
}

// Cancel abandons a non-terminal procedure. The vehicle is left untouched.
func (s *Service) Cancel(ctx context.Context, procedureID uint, reason string) (models.Procedure, error) {
	var proc models.Procedure
	err := s.repo.InTx(ctx, func(r Repository) error {
		p, err := r.GetProcedure(ctx, procedureID)
		if err != nil {
			return err
		}
		if !CanTransitionProcedure(p.Status, models.ProcedureCancelled) {
			return ErrInvalidTransition
		}
		now := s.now()
		p.Status = models.ProcedureCancelled
		p.CancelReason = reason
		p.CancelledAt = &now
		proc = p
		return r.SaveProcedure(ctx, &p)
	})
	return proc, err
}

// Complete closes an in_progress procedure once the ledger shows nothing owed,
// then applies the vehicle outcome the procedure type implies. The balance
// check and both status writes share one transaction so a concurrent payment
// or transition cannot slip between them.
func (s *Service) Complete(ctx context.Context, procedureID uint) (models.Procedure, error) {
	var (
		proc    models.Procedure
		vehicle models.Vehicle
	)
	err := s.repo.InTx(ctx, func(r Repository) error {
		p, err := r.GetProcedure(ctx, procedureID)
		if err != nil {
			return err
		}
		if !CanTransitionProcedure(p.Status, models.ProcedureCompleted) {
			return ErrInvalidTransition
		}

		balance, err := outstanding(ctx, r, p)
		if err != nil {
			return err
		}
		if balance > 0 {
			return ErrOutstandingBalance
		}

		v, err := r.GetVehicle(ctx, p.VehicleID)
		if err != nil {
			return err
		}
		outcome := p.Type.VehicleOutcome()
		if !CanTransitionVehicle(v.Status, outcome) {
			return ErrIllegalVehicleTransition
		}

		now := s.now()
		p.Status = models.ProcedureCompleted
		p.CompletedAt = &now
		if err := r.SaveProcedure(ctx, &p); err != nil {
			return err
		}
		if err := r.UpdateVehicleStatus(ctx, v.ID, outcome); err != nil {
			return err
		}
		v.Status = outcome
		proc, vehicle = p, v
		return nil
	})
	if err != nil {
		return models.Procedure{}, err
	}

	if s.notifier != nil {
		s.notifier.VehicleStatusChanged(vehicle, proc)
	}
	return proc, nil
}

// ApplyOutcome is the administrative override path for vehicle status, bound
// by the same transition table as procedure completion.
func (s *Service) ApplyOutcome(ctx context.Context, vehicleID uint, newStatus models.VehicleStatus) (models.Vehicle, error) {
	var vehicle models.Vehicle
	err := s.repo.InTx(ctx, func(r Repository) error {
		v, err := r.GetVehicle(ctx, vehicleID)
		if err != nil {
			return err
		}
		if !CanTransitionVehicle(v.Status, newStatus) {
			return ErrIllegalVehicleTransition
		}
		if err := r.UpdateVehicleStatus(ctx, v.ID, newStatus); err != nil {
			return err
		}
		v.Status = newStatus
		vehicle = v
		return nil
	})
	return vehicle, err
}

// RecordPayment appends a ledger entry against an open procedure. Entries are
// immutable once written.
func (s *Service) RecordPayment(ctx context.Context, procedureID uint, amount int64, method models.PaymentMethod, reference string) (models.Payment, error) {
	if amount <= 0 {
		return models.Payment{}, ErrInvalidAmount
	}

	var payment models.Payment
	err := s.repo.InTx(ctx, func(r Repository) error {
		p, err := r.GetProcedure(ctx, procedureID)
		if err != nil {
			return err
		}
		if p.Status.Terminal() {
			return ErrProcedureClosed
		}

		if reference == "" {
			reference = uuid.NewString()
		}

		var ownerID *uint
		vehicle, err := r.GetVehicle(ctx, p.VehicleID)
		if err == nil {
			ownerID = vehicle.OwnerID
		} else {
			logrus.WithError(err).WithField("procedure_id", procedureID).
				Warn("RecordPayment: could not resolve vehicle owner")
		}

		payment = models.Payment{
			ProcedureID: procedureID,
			VehicleID:   p.VehicleID,
			OwnerID:     ownerID,
			Amount:      amount,
			Method:      method,
			Reference:   reference,
			PaidAt:      s.now(),
		}
		return r.CreatePayment(ctx, &payment)
	})
	return payment, err
}

// OutstandingBalance recomputes cost minus payments on demand, floored at
// zero. The ledger is small; nothing is cached.
func (s *Service) OutstandingBalance(ctx context.Context, procedureID uint) (int64, error) {
	p, err := s.repo.GetProcedure(ctx, procedureID)
	if err != nil {
		return 0, err
	}
	return outstanding(ctx, s.repo, p)
}

func outstanding(ctx context.Context, r Repository, p models.Procedure) (int64, error) {
	paid, err := r.SumPayments(ctx, p.ID)
	if err != nil {
		return 0, err
	}
	balance := p.Cost - paid
	if balance < 0 {
		balance = 0
	}
	return balance, nil
}
