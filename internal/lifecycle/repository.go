package lifecycle

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"impound_manager/internal/models"
)

// GormRepository implements Repository over the shared gorm handle. Reads
// inside InTx take row locks so the balance check and the status writes in
// Complete cannot race a concurrent payment.
type GormRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx, inTx: true})
	})
}

func (r *GormRepository) locked() *gorm.DB {
	if r.inTx {
		return r.db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.db
}

func (r *GormRepository) GetVehicle(ctx context.Context, id uint) (models.Vehicle, error) {
	var v models.Vehicle
	if err := r.locked().WithContext(ctx).First(&v, id).Error; err != nil {
		return models.Vehicle{}, mapNotFound(err)
	}
	return v, nil
}

func (r *GormRepository) UpdateVehicleStatus(ctx context.Context, id uint, status models.VehicleStatus) error {
	return r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *GormRepository) GetProcedure(ctx context.Context, id uint) (models.Procedure, error) {
	var p models.Procedure
	if err := r.locked().WithContext(ctx).First(&p, id).Error; err != nil {
		return models.Procedure{}, mapNotFound(err)
	}
	return p, nil
}

func (r *GormRepository) HasActiveProcedure(ctx context.Context, vehicleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Procedure{}).
		Where("vehicle_id = ? AND status NOT IN ?", vehicleID,
			[]models.ProcedureStatus{models.ProcedureCompleted, models.ProcedureCancelled}).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepository) CreateProcedure(ctx context.Context, p *models.Procedure) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormRepository) SaveProcedure(ctx context.Context, p *models.Procedure) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *GormRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormRepository) SumPayments(ctx context.Context, procedureID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("procedure_id = ?", procedureID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
