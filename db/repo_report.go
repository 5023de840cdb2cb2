package db

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"school_booking_tool/models"
)

// DashboardStats are the admin counters.
type DashboardStats struct {
	InUse        int            `json:"inUse"`
	Maintenanced int            `json:"maintenanced"`
	Defective    int            `json:"defective"`
	TeacherStats map[string]int `json:"teacherStats"`
}

func (r *Repo) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	loans, err := r.ListActiveLoans(ctx)
	if err != nil {
		return nil, err
	}
	maint, err := r.MaintenanceSet(ctx)
	if err != nil {
		return nil, err
	}
	defects, err := r.Defects(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Maintenanced: len(maint),
		Defective:    len(defects),
		TeacherStats: map[string]int{},
	}
	for _, l := range loans {
		stats.InUse += len(l.Units)
		stats.TeacherStats[l.TeacherName] += len(l.Units)
	}
	return stats, nil
}

// Report resource kinds and row statuses for entries that are still live.
const (
	ReportKindRoom  = "sala_lex"
	ReportKindUnits = "chromebooks"

	reportStatusBooked = "Reservado"
	reportStatusInUse  = "Em uso"
)

// ReportRow is the flat shape the export formatter consumes.
type ReportRow struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Kind        string `json:"kind"`
	TeacherName string `json:"teacherName"`
	Details     string `json:"details"`
	Status      string `json:"status"`
}

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// MonthlyReport unions room bookings, open loans and history entries whose
// day falls in month ("2006-01"), sorted by (date, time).
func (r *Repo) MonthlyReport(ctx context.Context, month string) ([]ReportRow, error) {
	if !monthRe.MatchString(month) {
		return nil, validationf("month must be yyyy-mm")
	}
	like := month + "-%"
	tx := r.DB.WithContext(ctx)

	var rooms []models.RoomBooking
	if err := tx.Where("day LIKE ?", like).Find(&rooms).Error; err != nil {
		return nil, classify(err)
	}
	var loans []models.Loan
	if err := tx.Where("day LIKE ?", like).Find(&loans).Error; err != nil {
		return nil, classify(err)
	}
	var hist []models.HistoryEntry
	if err := tx.Where("day LIKE ?", like).Find(&hist).Error; err != nil {
		return nil, classify(err)
	}

	rows := make([]ReportRow, 0, len(rooms)+len(loans)+len(hist))
	for _, b := range rooms {
		rows = append(rows, ReportRow{
			Date:        b.Day,
			Time:        b.StartTime + " - " + b.EndTime,
			Kind:        ReportKindRoom,
			TeacherName: b.TeacherName,
			Details:     "Sala Lex",
			Status:      reportStatusBooked,
		})
	}
	for _, l := range loans {
		rows = append(rows, ReportRow{
			Date:        l.Day,
			Time:        l.StartTime,
			Kind:        ReportKindUnits,
			TeacherName: l.TeacherName,
			Details:     unitsDetail(l.Units),
			Status:      reportStatusInUse,
		})
	}
	for _, h := range hist {
		rows = append(rows, ReportRow{
			Date:        h.Day,
			Time:        h.StartTime,
			Kind:        ReportKindUnits,
			TeacherName: h.TeacherName,
			Details:     unitsDetail(h.Units),
			Status:      h.Status,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Time < rows[j].Time
	})
	return rows, nil
}

func unitsDetail(units models.UnitList) string {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = fmt.Sprint(u)
	}
	return "Chromebooks: " + strings.Join(parts, ", ")
}
