package db

import (
	"context"

	"school_booking_tool/models"
)

// RecentHistory returns the latest audit entries, newest first.
func (r *Repo) RecentHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var es []models.HistoryEntry
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&es).Error
	if err != nil {
		return nil, classify(err)
	}
	return es, nil
}
