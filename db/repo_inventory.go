package db

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"school_booking_tool/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	configKeyMaintenance = "maintenance"
	configKeyDefects     = "defects"
)

func loadConfigValue(tx *gorm.DB, key string, out any) error {
	var row models.SystemConfig
	if err := tx.First(&row, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // absent row reads as the empty value
		}
		return err
	}
	return json.Unmarshal([]byte(row.Value), out)
}

func saveConfigValue(tx *gorm.DB, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&models.SystemConfig{Key: key, Value: string(b)}).Error
}

// MaintenanceSet reads the withdrawn-for-maintenance unit set.
func (r *Repo) MaintenanceSet(ctx context.Context) (map[int]bool, error) {
	var ids []int
	if err := loadConfigValue(r.DB.WithContext(ctx), configKeyMaintenance, &ids); err != nil {
		return nil, classify(err)
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// ToggleMaintenance flips unitID in the caller-supplied snapshot and replaces
// the whole stored set. Last writer wins across concurrent admins.
func (r *Repo) ToggleMaintenance(ctx context.Context, unitID int, snapshot []int) ([]int, error) {
	if unitID < 1 || unitID > r.FleetSize {
		return nil, validationf("unit %d out of range [1,%d]", unitID, r.FleetSize)
	}
	next := make([]int, 0, len(snapshot)+1)
	removed := false
	for _, id := range snapshot {
		if id == unitID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, unitID)
	}
	sort.Ints(next)

	err := r.txn(ctx, func(tx *gorm.DB) error {
		return saveConfigValue(tx, configKeyMaintenance, next)
	})
	if err != nil {
		return nil, classify(err)
	}
	return next, nil
}

// Defects reads the open defect map keyed by unit id.
func (r *Repo) Defects(ctx context.Context) (map[int]models.DefectRecord, error) {
	defects := map[int]models.DefectRecord{}
	if err := loadConfigValue(r.DB.WithContext(ctx), configKeyDefects, &defects); err != nil {
		return nil, classify(err)
	}
	return defects, nil
}

// ReportDefect upserts the unit's defect record, read-merge-write on the
// single defects document.
func (r *Repo) ReportDefect(ctx context.Context, unitID int, reason, reporter string) error {
	if unitID < 1 || unitID > r.FleetSize {
		return validationf("unit %d out of range [1,%d]", unitID, r.FleetSize)
	}
	if reason == "" {
		return validationf("defect reason is required")
	}
	err := r.txn(ctx, func(tx *gorm.DB) error {
		defects := map[int]models.DefectRecord{}
		if err := loadConfigValue(tx, configKeyDefects, &defects); err != nil {
			return err
		}
		defects[unitID] = models.DefectRecord{
			Reason:   reason,
			Reporter: reporter,
			Date:     time.Now().UTC(),
		}
		return saveConfigValue(tx, configKeyDefects, defects)
	})
	return classify(err)
}

// FixDefect clears the unit's defect record. Calling it for a unit without
// one is a no-op, not an error.
func (r *Repo) FixDefect(ctx context.Context, unitID int) error {
	err := r.txn(ctx, func(tx *gorm.DB) error {
		defects := map[int]models.DefectRecord{}
		if err := loadConfigValue(tx, configKeyDefects, &defects); err != nil {
			return err
		}
		delete(defects, unitID)
		return saveConfigValue(tx, configKeyDefects, defects)
	})
	return classify(err)
}
