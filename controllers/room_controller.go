package controllers

import (
	"net/http"
	"time"

	"school_booking_tool/app"
	"school_booking_tool/db"
	"school_booking_tool/timeslot"

	"github.com/gin-gonic/gin"
)

type RoomController struct{ *Srv }

func NewRoomController(s *Srv) *RoomController { return &RoomController{Srv: s} }

// GET /api/rooms: upcoming Lex bookings.
func (rc *RoomController) List(c *gin.Context) {
	bs, err := rc.Repo.ListUpcomingRoomBookings(c.Request.Context(), timeslot.Today(time.Now()))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"bookings": bs})
}

// POST /api/rooms
func (rc *RoomController) Reserve(c *gin.Context) {
	var in struct {
		Day   string `json:"day" binding:"required"`
		Start string `json:"start" binding:"required"`
		End   string `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	r := currentUser(c)

	booking, err := rc.Repo.ReserveRoom(c.Request.Context(), db.ReserveRoomInput{
		Day:         in.Day,
		Start:       in.Start,
		End:         in.End,
		UserID:      r.ID,
		TeacherName: r.Name,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// DELETE /api/rooms/:id: owner or admin.
func (rc *RoomController) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing booking id"})
		return
	}
	r := currentUser(c)
	if err := rc.Repo.CancelRoomBooking(c.Request.Context(), id, r.ID, r.IsAdmin); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
