package db

import (
	"context"
	"errors"
	"time"

	"school_booking_tool/models"
	"school_booking_tool/timeslot"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxRoomBookingMinutes caps a single Lex reservation.
const MaxRoomBookingMinutes = 180

type ReserveRoomInput struct {
	Day         string
	Start       string
	End         string
	UserID      string
	TeacherName string
}

// ReserveRoom validates, re-checks for overlap and inserts the booking.
// Overlap rule: existing.start < new.end AND existing.end > new.start.
func (r *Repo) ReserveRoom(ctx context.Context, in ReserveRoomInput) (*models.RoomBooking, error) {
	now := time.Now()
	startMin, err := timeslot.Minutes(in.Start)
	if err != nil {
		return nil, validationf("invalid start time %q", in.Start)
	}
	endMin, err := timeslot.Minutes(in.End)
	if err != nil {
		return nil, validationf("invalid end time %q", in.End)
	}
	if startMin >= endMin {
		return nil, validationf("start must be before end")
	}
	if endMin-startMin > MaxRoomBookingMinutes {
		return nil, validationf("booking longer than %d minutes", MaxRoomBookingMinutes)
	}
	if !timeslot.ValidDay(in.Day) {
		return nil, validationf("invalid day %q", in.Day)
	}
	if in.Day < timeslot.Today(now) {
		return nil, validationf("day is in the past")
	}
	if in.Day == timeslot.Today(now) && timeslot.IsPast(in.Day, in.Start, now) {
		return nil, validationf("start time has already passed")
	}

	booking := &models.RoomBooking{
		ID:          uuid.NewString(),
		Day:         in.Day,
		StartTime:   in.Start,
		EndTime:     in.End,
		UserID:      in.UserID,
		TeacherName: in.TeacherName,
	}
	err = r.txn(ctx, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.RoomBooking{}).
			Where("day = ? AND start_time < ? AND end_time > ?", in.Day, in.End, in.Start).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrSlotTaken
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	return booking, nil
}

// CancelRoomBooking deletes a booking for its owner or an admin.
func (r *Repo) CancelRoomBooking(ctx context.Context, id, requesterID string, requesterIsAdmin bool) error {
	err := r.txn(ctx, func(tx *gorm.DB) error {
		var b models.RoomBooking
		if err := tx.First(&b, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if b.UserID != requesterID && !requesterIsAdmin {
			return ErrNotAuthorized
		}
		return tx.Delete(&b).Error
	})
	return classify(err)
}

// ListUpcomingRoomBookings returns bookings from fromDay on, soonest first.
func (r *Repo) ListUpcomingRoomBookings(ctx context.Context, fromDay string) ([]models.RoomBooking, error) {
	var bs []models.RoomBooking
	err := r.DB.WithContext(ctx).
		Where("day >= ?", fromDay).
		Order("day, start_time").
		Find(&bs).Error
	if err != nil {
		return nil, classify(err)
	}
	return bs, nil
}
