package settings

import (
	"testing"

	"impound_manager/internal/models"
)

type fakeLoader struct {
	rows  map[string]models.Setting
	loads int
}

func (f *fakeLoader) Load(key string) (models.Setting, error) {
	f.loads++
	s, ok := f.rows[key]
	if !ok {
		return models.Setting{}, ErrNotFound
	}
	return s, nil
}

func (f *fakeLoader) Save(s models.Setting) error {
	f.rows[s.Key] = s
	return nil
}

func TestGetReadsThroughCache(t *testing.T) {
	loader := &fakeLoader{rows: map[string]models.Setting{
		KeyDailyStorageRate: {Key: KeyDailyStorageRate, Value: "2000", Group: "fees"},
	}}
	store := NewStore(loader)

	for i := 0; i < 3; i++ {
		v, err := store.Get(KeyDailyStorageRate)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if v != "2000" {
			t.Fatalf("expected 2000, got %q", v)
		}
	}
	if loader.loads != 1 {
		t.Fatalf("expected a single database load, got %d", loader.loads)
	}
}

func TestSetInvalidatesCache(t *testing.T) {
	loader := &fakeLoader{rows: map[string]models.Setting{
		KeyDailyStorageRate: {Key: KeyDailyStorageRate, Value: "2000", Group: "fees"},
	}}
	store := NewStore(loader)

	if _, err := store.Get(KeyDailyStorageRate); err != nil {
		t.Fatalf("Get: %v", err)
	}

	if err := store.Set(KeyDailyStorageRate, "2500", "fees"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, err := store.Get(KeyDailyStorageRate)
	if err != nil {
		t.Fatalf("Get after Set: %v", err)
	}
	if v != "2500" {
		t.Fatalf("expected updated value 2500, got %q", v)
	}
}

func TestFeeConfigAssemblesRates(t *testing.T) {
	loader := &fakeLoader{rows: map[string]models.Setting{
		KeyDailyStorageRate:     {Key: KeyDailyStorageRate, Value: "2000"},
		KeyAdminFeeRelease:      {Key: KeyAdminFeeRelease, Value: "10000"},
		KeyPenaltyRatePerDay:    {Key: KeyPenaltyRatePerDay, Value: "1000"},
		KeyPenaltyThresholdDays: {Key: KeyPenaltyThresholdDays, Value: "30"},
	}}
	store := NewStore(loader)

	cfg, err := store.FeeConfig()
	if err != nil {
		t.Fatalf("FeeConfig: %v", err)
	}
	if cfg.DailyStorageRate != 2000 {
		t.Fatalf("expected storage rate 2000, got %d", cfg.DailyStorageRate)
	}
	if cfg.AdminFeeByType[models.ProcedureRelease] != 10000 {
		t.Fatalf("expected release fee 10000, got %d", cfg.AdminFeeByType[models.ProcedureRelease])
	}
	// Missing keys fall back to zero.
	if cfg.AdminFeeByType[models.ProcedureSale] != 0 {
		t.Fatalf("expected missing sale fee to default to 0")
	}
	if cfg.PenaltyThresholdDays != 30 {
		t.Fatalf("expected threshold 30, got %d", cfg.PenaltyThresholdDays)
	}
}
