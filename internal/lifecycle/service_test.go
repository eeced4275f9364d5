package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"impound_manager/internal/fees"
	"impound_manager/internal/models"
)

// fakeRepo keeps everything in maps; InTx just runs the body.
type fakeRepo struct {
	vehicles   map[uint]models.Vehicle
	procedures map[uint]models.Procedure
	payments   []models.Payment
	nextProcID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		vehicles:   make(map[uint]models.Vehicle),
		procedures: make(map[uint]models.Procedure),
		nextProcID: 1,
	}
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) GetVehicle(ctx context.Context, id uint) (models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return models.Vehicle{}, ErrNotFound
	}
	return v, nil
}

func (f *fakeRepo) UpdateVehicleStatus(ctx context.Context, id uint, status models.VehicleStatus) error {
	v, ok := f.vehicles[id]
	if !ok {
		return ErrNotFound
	}
	v.Status = status
	f.vehicles[id] = v
	return nil
}

func (f *fakeRepo) GetProcedure(ctx context.Context, id uint) (models.Procedure, error) {
	p, ok := f.procedures[id]
	if !ok {
		return models.Procedure{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) HasActiveProcedure(ctx context.Context, vehicleID uint) (bool, error) {
	for _, p := range f.procedures {
		if p.VehicleID == vehicleID && !p.Status.Terminal() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateProcedure(ctx context.Context, p *models.Procedure) error {
	p.ID = f.nextProcID
	f.nextProcID++
	f.procedures[p.ID] = *p
	return nil
}

func (f *fakeRepo) SaveProcedure(ctx context.Context, p *models.Procedure) error {
	f.procedures[p.ID] = *p
	return nil
}

func (f *fakeRepo) CreatePayment(ctx context.Context, p *models.Payment) error {
	p.ID = uint(len(f.payments) + 1)
	f.payments = append(f.payments, *p)
	return nil
}

func (f *fakeRepo) SumPayments(ctx context.Context, procedureID uint) (int64, error) {
	var total int64
	for _, p := range f.payments {
		if p.ProcedureID == procedureID {
			total += p.Amount
		}
	}
	return total, nil
}

type fakeRates struct{ cfg fees.Config }

func (f fakeRates) FeeConfig() (fees.Config, error) { return f.cfg, nil }

type fakeNotifier struct{ calls int }

func (f *fakeNotifier) VehicleStatusChanged(models.Vehicle, models.Procedure) { f.calls++ }

func testService(repo *fakeRepo, notifier StatusNotifier) *Service {
	svc := NewService(repo, fakeRates{cfg: fees.Config{
		DailyStorageRate: 2000,
		AdminFeeByType: map[models.ProcedureType]int64{
			models.ProcedureRelease:     10000,
			models.ProcedureSale:        15000,
			models.ProcedureDestruction: 5000,
		},
		PenaltyRatePerDay:    1000,
		PenaltyThresholdDays: 30,
	}}, notifier)

	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base.Add(10 * 24 * time.Hour) }
	return svc
}

func seedVehicle(repo *fakeRepo, status models.VehicleStatus) uint {
	id := uint(len(repo.vehicles) + 1)
	v := models.Vehicle{
		Status:      status,
		ImpoundedAt: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	v.ID = id
	repo.vehicles[id] = v
	return id
}

func TestOpenComputesCost(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, nil)
	vehicleID := seedVehicle(repo, models.VehicleImpounded)

	proc, err := svc.Open(context.Background(), vehicleID, models.ProcedureRelease, 7)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if proc.Status != models.ProcedurePending {
		t.Fatalf("expected pending, got %s", proc.Status)
	}
	// 10 days * 2000 + 10000 admin fee.
	if proc.Cost != 30000 {
		t.Fatalf("expected cost 30000, got %d", proc.Cost)
	}
}

func TestOpenRejectsNonImpoundedVehicle(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, nil)
	vehicleID := seedVehicle(repo, models.VehicleClaimed)

	_, err := svc.Open(context.Background(), vehicleID, models.ProcedureRelease, 7)
	if !errors.Is(err, ErrInvalidVehicleState) {
		t.Fatalf("expected ErrInvalidVehicleState, got %v", err)
	}
}

func TestOpenRejectsSecondActiveProcedure(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, nil)
	vehicleID := seedVehicle(repo, models.VehicleImpounded)

	if _, err := svc.Open(context.Background(), vehicleID, models.ProcedureRelease, 7); err != nil {
		t.Fatalf("first Open: %v", err)
	}
	_, err := svc.Open(context.Background(), vehicleID, models.ProcedureSale, 7)
	if !errors.Is(err, ErrActiveProcedure) {
		t.Fatalf("expected ErrActiveProcedure, got %v", err)
	}

	// A cancelled procedure frees the vehicle for a new one.
	if _, err := svc.Cancel(context.Background(), 1, "abandoned"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := svc.Open(context.Background(), vehicleID, models.ProcedureSale, 7); err != nil {
		t.Fatalf("Open after cancel: %v", err)
	}
}

func TestAdvanceOnlyFromPending(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, nil)
	vehicleID := seedVehicle(repo, models.VehicleImpounded)

	proc, _ := svc.Open(context.Background(), vehicleID, models.ProcedureRelease, 7)
	advanced, err := svc.Advance(context.Background(), proc.ID)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if advanced.Status != models.ProcedureInProgress || advanced.StartedAt == nil {
		t.Fatalf("unexpected procedure after advance: %+v", advanced)
	}

	if _, err := svc.Advance(context.Background(), proc.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second advance, got %v", err)
	}
}

func TestCompleteReleaseFullPayment(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := testService(repo, notifier)
	vehicleID := seedVehicle(repo, models.VehicleImpounded)

	proc, _ := svc.Open(context.Background(), vehicleID, models.ProcedureRelease, 7)
	if _, err := svc.Advance(context.Background(), proc.ID); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if _, err := svc.RecordPayment(context.Background(), proc.ID, proc.Cost, models.PayCash, ""); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	completed, err := svc.Complete(context.Background(), proc.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Status != models.ProcedureCompleted || completed.CompletedAt == nil {
		t.Fatalf("unexpected procedure after complete: %+v", completed)
	}
	if repo.vehicles[vehicleID].Status != models.VehicleClaimed {
		t.Fatalf("expected vehicle claimed, got %s", repo.vehicles[vehicleID].Status)
	}
	if notifier.calls != 1 {
		t.Fatalf("expected one notification, got %d", notifier.calls)
	}
}

func TestCompleteFailsWithOutstandingBalance(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, nil)
	vehicleID := seedVehicle(repo, models.VehicleImpounded)

	proc, _ := svc.Open(context.Background(), vehicleID, models.ProcedureRelease, 7)
	svc.Advance(context.Background(), proc.ID)
	svc.RecordPayment(context.Background(), proc.ID, proc.Cost-1, models.PayMobileMoney, "MM-1")

	_, err := svc.Complete(context.Background(), proc.ID)
	if !errors.Is(err, ErrOutstandingBalance) {
		t.Fatalf("expected ErrOutstandingBalance, got %v", err)
	}
	if repo.vehicles[vehicleID].Status != models.VehicleImpounded {
		t.Fatalf("expected vehicle still impounded, got %s", repo.vehicles[vehicleID].Status)
	}

	balance, err := svc.OutstandingBalance(context.Background(), proc.ID)
	if err != nil {
		t.Fatalf("OutstandingBalance: %v", err)
	}
	if balance != 1 {
		t.Fatalf("expected balance 1, got %d", balance)
	}
}

func TestCompleteRequiresInProgress(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, nil)
	vehicleID := seedVehicle(repo, models.VehicleImpounded)

	proc, _ := svc.Open(context.Background(), vehicleID, models.ProcedureRelease, 7)
	svc.RecordPayment(context.Background(), proc.ID, proc.Cost, models.PayCash, "")

	// Still pending: completion is not reachable even when paid in full.
	if _, err := svc.Complete(context.Background(), proc.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRecordPaymentRejectsNonPositiveAmounts(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, nil)
	vehicleID := seedVehicle(repo, models.VehicleImpounded)
	proc, _ := svc.Open(context.Background(), vehicleID, models.ProcedureRelease, 7)

	for _, amount := range []int64{0, -1, -5000} {
		if _, err := svc.RecordPayment(context.Background(), proc.ID, amount, models.PayCash, ""); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount for %d, got %v", amount, err)
		}
	}
}

func TestRecordPaymentRejectsClosedProcedure(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, nil)
	vehicleID := seedVehicle(repo, models.VehicleImpounded)

	proc, _ := svc.Open(context.Background(), vehicleID, models.ProcedureRelease, 7)
	if _, err := svc.Cancel(context.Background(), proc.ID, "owner no-show"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	_, err := svc.RecordPayment(context.Background(), proc.ID, 1000, models.PayCash, "")
	if !errors.Is(err, ErrProcedureClosed) {
		t.Fatalf("expected ErrProcedureClosed, got %v", err)
	}
}

func TestRecordPaymentGeneratesReference(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, nil)
	vehicleID := seedVehicle(repo, models.VehicleImpounded)
	proc, _ := svc.Open(context.Background(), vehicleID, models.ProcedureRelease, 7)

	payment, err := svc.RecordPayment(context.Background(), proc.ID, 500, models.PayBankTransfer, "")
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if payment.Reference == "" {
		t.Fatalf("expected a generated reference")
	}
}

func TestOverpaymentFloorsBalanceAtZero(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, nil)
	vehicleID := seedVehicle(repo, models.VehicleImpounded)
	proc, _ := svc.Open(context.Background(), vehicleID, models.ProcedureRelease, 7)

	svc.RecordPayment(context.Background(), proc.ID, proc.Cost+9999, models.PayCash, "")
	balance, err := svc.OutstandingBalance(context.Background(), proc.ID)
	if err != nil {
		t.Fatalf("OutstandingBalance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected balance floored at 0, got %d", balance)
	}
}

func TestApplyOutcomeOverride(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, nil)
	vehicleID := seedVehicle(repo, models.VehicleImpounded)

	v, err := svc.ApplyOutcome(context.Background(), vehicleID, models.VehiclePendingDestruction)
	if err != nil {
		t.Fatalf("ApplyOutcome: %v", err)
	}
	if v.Status != models.VehiclePendingDestruction {
		t.Fatalf("expected pending_destruction, got %s", v.Status)
	}

	if _, err := svc.ApplyOutcome(context.Background(), vehicleID, models.VehicleClaimed); !errors.Is(err, ErrIllegalVehicleTransition) {
		t.Fatalf("expected ErrIllegalVehicleTransition, got %v", err)
	}

	if _, err := svc.ApplyOutcome(context.Background(), vehicleID, models.VehicleDestroyed); err != nil {
		t.Fatalf("pending_destruction -> destroyed: %v", err)
	}
	// Destroyed is terminal.
	if _, err := svc.ApplyOutcome(context.Background(), vehicleID, models.VehicleImpounded); !errors.Is(err, ErrIllegalVehicleTransition) {
		t.Fatalf("expected terminal vehicle to stay terminal, got %v", err)
	}
}
