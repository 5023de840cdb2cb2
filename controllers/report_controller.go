package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"school_booking_tool/app"
	"school_booking_tool/timeslot"

	"github.com/gin-gonic/gin"
)

type ReportController struct{ *Srv }

func NewReportController(s *Srv) *ReportController { return &ReportController{Srv: s} }

// GET /api/reports/dashboard
func (rc *ReportController) Dashboard(c *gin.Context) {
	stats, err := rc.Repo.DashboardStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/reports/monthly?month=2024-06[&format=csv]
func (rc *ReportController) Monthly(c *gin.Context) {
	month := c.Query("month")
	rows, err := rc.Repo.MonthlyReport(c.Request.Context(), month)
	if err != nil {
		fail(c, err)
		return
	}

	if c.Query("format") != "csv" {
		c.JSON(http.StatusOK, app.H{"rows": rows})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=relatorio-%s.csv", month))
	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Data", "Horário", "Recurso", "Professor(a)", "Detalhes", "Status"})
	for _, r := range rows {
		_ = w.Write([]string{timeslot.FormatDate(r.Date), r.Time, r.Kind, r.TeacherName, r.Details, r.Status})
	}
	w.Flush()
}

// GET /api/reports/history?limit=50
func (rc *ReportController) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	es, err := rc.Repo.RecentHistory(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"entries": es})
}
