// Package settings exposes the tunable business parameters (rates, delays)
// behind a read-through cache. Writes go to the settings table and invalidate
// the cached key, so the next read sees the new value.
package settings

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"

	"impound_manager/internal/fees"
	"impound_manager/internal/models"
)

var ErrNotFound = errors.New("settings: key not found")

// Fee configuration keys, group "fees".
const (
	KeyDailyStorageRate     = "fees.daily_storage_rate"
	KeyAdminFeeRelease      = "fees.admin_fee_release"
	KeyAdminFeeSale         = "fees.admin_fee_sale"
	KeyAdminFeeDestruction  = "fees.admin_fee_destruction"
	KeyPenaltyRatePerDay    = "fees.penalty_rate_per_day"
	KeyPenaltyThresholdDays = "fees.penalty_threshold_days"
	KeyLegalNoticeDelayDays = "fees.legal_notice_delay_days"
)

// Loader is what Store needs from the database; satisfied by a gorm-backed
// implementation in production and a fake in tests.
type Loader interface {
	Load(key string) (models.Setting, error)
	Save(setting models.Setting) error
}

type Store struct {
	loader Loader

	mu    sync.RWMutex
	cache map[string]string
}

func NewStore(loader Loader) *Store {
	return &Store{loader: loader, cache: make(map[string]string)}
}

// Get returns the value for key, serving from cache when possible.
func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	v, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return v, nil
	}

	setting, err := s.loader.Load(key)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.cache[key] = setting.Value
	s.mu.Unlock()
	return setting.Value, nil
}

// Set writes the setting through to the database and invalidates the cache
// entry for its key.
func (s *Store) Set(key, value, group string) error {
	if err := s.loader.Save(models.Setting{Key: key, Value: value, Group: group}); err != nil {
		return err
	}
	s.Invalidate(key)
	return nil
}

// Invalidate drops a key from the cache.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
}

func (s *Store) getInt(key string, fallback int64) (int64, error) {
	raw, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

// LegalNoticeDelayDays is how long a vehicle may sit impounded before the
// owner is due a deadline warning.
func (s *Store) LegalNoticeDelayDays() (int64, error) {
	return s.getInt(KeyLegalNoticeDelayDays, 30)
}

// FeeConfig assembles the fee calculator configuration from the fees.* keys.
// Missing keys fall back to zero rates so a fresh install still computes.
func (s *Store) FeeConfig() (fees.Config, error) {
	rate, err := s.getInt(KeyDailyStorageRate, 0)
	if err != nil {
		return fees.Config{}, err
	}
	release, err := s.getInt(KeyAdminFeeRelease, 0)
	if err != nil {
		return fees.Config{}, err
	}
	sale, err := s.getInt(KeyAdminFeeSale, 0)
	if err != nil {
		return fees.Config{}, err
	}
	destruction, err := s.getInt(KeyAdminFeeDestruction, 0)
	if err != nil {
		return fees.Config{}, err
	}
	penaltyRate, err := s.getInt(KeyPenaltyRatePerDay, 0)
	if err != nil {
		return fees.Config{}, err
	}
	threshold, err := s.getInt(KeyPenaltyThresholdDays, 0)
	if err != nil {
		return fees.Config{}, err
	}

	return fees.Config{
		DailyStorageRate: rate,
		AdminFeeByType: map[models.ProcedureType]int64{
			models.ProcedureRelease:     release,
			models.ProcedureSale:        sale,
			models.ProcedureDestruction: destruction,
		},
		PenaltyRatePerDay:    penaltyRate,
		PenaltyThresholdDays: threshold,
		ClockSkewTolerance:   5 * time.Minute,
	}, nil
}

// GormLoader backs the store with the settings table.
type GormLoader struct {
	DB *gorm.DB
}

func (l GormLoader) Load(key string) (models.Setting, error) {
	var setting models.Setting
	if err := l.DB.First(&setting, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Setting{}, ErrNotFound
		}
		return models.Setting{}, err
	}
	return setting, nil
}

func (l GormLoader) Save(setting models.Setting) error {
	return l.DB.Save(&setting).Error
}
