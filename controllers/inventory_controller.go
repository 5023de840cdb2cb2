package controllers

import (
	"net/http"
	"strconv"

	"school_booking_tool/app"
	"school_booking_tool/inventory"

	"github.com/gin-gonic/gin"
)

type InventoryController struct{ *Srv }

func NewInventoryController(s *Srv) *InventoryController { return &InventoryController{Srv: s} }

func unitParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid unit id"})
		return 0, false
	}
	return id, true
}

// GET /api/inventory: the fleet grid with derived statuses.
func (ic *InventoryController) StatusBoard(c *gin.Context) {
	ctx := c.Request.Context()
	maint, err := ic.Repo.MaintenanceSet(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	defects, err := ic.Repo.Defects(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	loans, err := ic.Repo.ListActiveLoans(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	board := inventory.StatusBoard(ic.Repo.FleetSize, maint, defects, loans)
	c.JSON(http.StatusOK, app.H{"units": board})
}

// POST /api/inventory/:id/defect: any loan-holder can report.
func (ic *InventoryController) ReportDefect(c *gin.Context) {
	id, ok := unitParam(c)
	if !ok {
		return
	}
	var in struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	r := currentUser(c)
	if err := ic.Repo.ReportDefect(c.Request.Context(), id, in.Reason, r.Name); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// DELETE /api/inventory/:id/defect: admin marks the unit fixed.
func (ic *InventoryController) FixDefect(c *gin.Context) {
	id, ok := unitParam(c)
	if !ok {
		return
	}
	if err := ic.Repo.FixDefect(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// POST /api/inventory/:id/maintenance: admin toggles, sending the snapshot
// set the decision was made against.
func (ic *InventoryController) ToggleMaintenance(c *gin.Context) {
	id, ok := unitParam(c)
	if !ok {
		return
	}
	var in struct {
		Snapshot []int `json:"snapshot"`
	}
	_ = c.ShouldBindJSON(&in)

	next, err := ic.Repo.ToggleMaintenance(c.Request.Context(), id, in.Snapshot)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"maintenance": next})
}
