package controllers

import (
	"errors"
	"net/http"

	"school_booking_tool/app"
	"school_booking_tool/notify"

	"github.com/gin-gonic/gin"
)

type NotifyController struct{ *Srv }

func NewNotifyController(s *Srv) *NotifyController { return &NotifyController{Srv: s} }

// POST /api/notify: fan a notification out to every admin's registered
// device token. 400 on missing fields, 500 when the sender is not
// configured; non-POST gets 405 from the router.
func (nc *NotifyController) Send(c *gin.Context) {
	var in struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Title == "" || in.Body == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "Missing title or body"})
		return
	}

	sent, failed, err := nc.Broadcast.Broadcast(c.Request.Context(), in.Title, in.Body)
	if err != nil {
		if errors.Is(err, notify.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, app.H{"error": "push sender not configured"})
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"success":      true,
		"sentCount":    sent,
		"failureCount": failed,
	})
}
