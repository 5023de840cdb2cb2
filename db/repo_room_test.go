package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReserveRoomDurationCap(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	day := futureDay(7)

	// 181 minutes fails before touching the store
	_, err := repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: day, Start: "08:00", End: "11:01", UserID: "u1", TeacherName: "Ana",
	})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	// exactly 180 minutes is fine
	b, err := repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: day, Start: "08:00", End: "11:00", UserID: "u1", TeacherName: "Ana",
	})
	assert.NoError(t, err)
	assert.Equal(t, day, b.Day)
}

func TestReserveRoomValidation(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	var ve *ValidationError

	_, err := repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: futureDay(1), Start: "10:00", End: "09:00", UserID: "u1", TeacherName: "Ana",
	})
	assert.ErrorAs(t, err, &ve)

	_, err = repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: futureDay(-1), Start: "08:00", End: "09:00", UserID: "u1", TeacherName: "Ana",
	})
	assert.ErrorAs(t, err, &ve)

	_, err = repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: futureDay(1), Start: "bogus", End: "09:00", UserID: "u1", TeacherName: "Ana",
	})
	assert.ErrorAs(t, err, &ve)

	_, err = repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: "2099-6-1", Start: "08:00", End: "09:00", UserID: "u1", TeacherName: "Ana",
	})
	assert.ErrorAs(t, err, &ve)
}

func TestReserveRoomRejectsUnpaddedTimes(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	day := futureDay(7)

	_, err := repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: day, Start: "09:00", End: "10:00", UserID: "u1", TeacherName: "Ana",
	})
	assert.NoError(t, err)

	// "9:30" would evade the lexicographic overlap check; must not get in
	var ve *ValidationError
	_, err = repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: day, Start: "9:30", End: "10:30", UserID: "u2", TeacherName: "Bruno",
	})
	assert.ErrorAs(t, err, &ve)

	bs, _ := repo.ListUpcomingRoomBookings(ctx, futureDay(0))
	assert.Len(t, bs, 1)
}

func TestReserveRoomOverlap(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	day := futureDay(7)

	_, err := repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: day, Start: "09:00", End: "10:00", UserID: "u1", TeacherName: "Ana",
	})
	assert.NoError(t, err)

	// existing.start < new.end AND existing.end > new.start
	_, err = repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: day, Start: "09:30", End: "10:30", UserID: "u2", TeacherName: "Bruno",
	})
	assert.True(t, errors.Is(err, ErrSlotTaken))

	// touching intervals do not overlap
	_, err = repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: day, Start: "10:00", End: "11:00", UserID: "u2", TeacherName: "Bruno",
	})
	assert.NoError(t, err)

	// same slot on another day is free
	_, err = repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: futureDay(8), Start: "09:30", End: "10:30", UserID: "u2", TeacherName: "Bruno",
	})
	assert.NoError(t, err)
}

func TestCancelRoomBookingAuthorization(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	b, err := repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: futureDay(3), Start: "08:00", End: "09:00", UserID: "owner", TeacherName: "Ana",
	})
	assert.NoError(t, err)

	err = repo.CancelRoomBooking(ctx, b.ID, "stranger", false)
	assert.True(t, errors.Is(err, ErrNotAuthorized))

	// admin may cancel anyone's booking
	assert.NoError(t, repo.CancelRoomBooking(ctx, b.ID, "stranger", true))

	err = repo.CancelRoomBooking(ctx, b.ID, "owner", false)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListUpcomingRoomBookingsOrder(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	later, _ := repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: futureDay(5), Start: "08:00", End: "09:00", UserID: "u1", TeacherName: "Ana",
	})
	sooner, _ := repo.ReserveRoom(ctx, ReserveRoomInput{
		Day: futureDay(2), Start: "10:00", End: "11:00", UserID: "u1", TeacherName: "Ana",
	})

	bs, err := repo.ListUpcomingRoomBookings(ctx, futureDay(0))
	assert.NoError(t, err)
	if assert.Len(t, bs, 2) {
		assert.Equal(t, sooner.ID, bs[0].ID)
		assert.Equal(t, later.ID, bs[1].ID)
	}
}
