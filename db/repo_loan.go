package db

import (
	"context"
	"errors"
	"sort"
	"time"

	"school_booking_tool/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReserveUnitsInput struct {
	Day         string
	Start       string
	Units       []int
	UserID      string
	TeacherName string
}

// ReserveUnits creates one loan row covering the whole group, so it succeeds
// or fails together. The conflict check deliberately ignores Day/Start: a
// unit stays busy fleet-wide until returned. Maintenance and defects are not
// checked here, the status board keeps those units from being selected.
func (r *Repo) ReserveUnits(ctx context.Context, in ReserveUnitsInput) (*models.Loan, error) {
	if len(in.Units) == 0 {
		return nil, validationf("no units selected")
	}
	seen := map[int]bool{}
	for _, u := range in.Units {
		if u < 1 || u > r.FleetSize {
			return nil, validationf("unit %d out of range [1,%d]", u, r.FleetSize)
		}
		if seen[u] {
			return nil, validationf("unit %d listed twice", u)
		}
		seen[u] = true
	}

	loan := &models.Loan{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		TeacherName: in.TeacherName,
		Units:       append(models.UnitList{}, in.Units...),
		Day:         in.Day,
		StartTime:   in.Start,
	}
	err := r.txn(ctx, func(tx *gorm.DB) error {
		var active []models.Loan
		if err := tx.Find(&active).Error; err != nil {
			return err
		}
		busy := map[int]bool{}
		for _, l := range active {
			for _, u := range l.Units {
				busy[u] = true
			}
		}
		var conflict []int
		for _, u := range in.Units {
			if busy[u] {
				conflict = append(conflict, u)
			}
		}
		if len(conflict) > 0 {
			sort.Ints(conflict)
			return &UnitConflictError{Units: conflict}
		}
		return tx.Create(loan).Error
	})
	if err != nil {
		return nil, classify(err)
	}
	return loan, nil
}

// ReturnResult reports what a return did. Loan is nil after a full return.
type ReturnResult struct {
	Full    bool
	Loan    *models.Loan
	History *models.HistoryEntry
}

// ReturnLoan ends a loan fully or in part. Omitting units (or covering the
// whole set) is a full return: history row + loan deleted. A proper subset
// shrinks the loan to the remainder and logs only the returned ids. The
// history write and the loan mutation commit together.
func (r *Repo) ReturnLoan(ctx context.Context, loanID string, units []int) (*ReturnResult, error) {
	var res ReturnResult
	err := r.txn(ctx, func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.First(&loan, "id = ?", loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		returned := models.UnitList{}
		for _, u := range units {
			if loan.Units.Contains(u) && !returned.Contains(u) {
				returned = append(returned, u)
			}
		}
		if len(units) > 0 && len(returned) == 0 {
			return validationf("none of the units belong to this loan")
		}
		if len(returned) == 0 {
			returned = append(models.UnitList{}, loan.Units...)
		}
		remaining := loan.Units.Minus(returned)

		now := time.Now().UTC()
		entry := &models.HistoryEntry{
			ID:          uuid.NewString(),
			LoanID:      loan.ID,
			UserID:      loan.UserID,
			TeacherName: loan.TeacherName,
			Units:       returned,
			Day:         loan.Day,
			StartTime:   loan.StartTime,
			ReturnedAt:  &now,
		}

		if len(remaining) == 0 {
			entry.Status = models.StatusReturned
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
			if err := tx.Delete(&loan).Error; err != nil {
				return err
			}
			res = ReturnResult{Full: true, History: entry}
			return nil
		}

		entry.Status = models.StatusPartiallyReturned
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		loan.Units = remaining
		if err := tx.Model(&loan).Update("units", remaining).Error; err != nil {
			return err
		}
		res = ReturnResult{Full: false, Loan: &loan, History: entry}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return &res, nil
}

// TransferLoan hands the loan to a new holder, units unchanged. The prior
// holder is recorded both on the history row and on the loan itself.
func (r *Repo) TransferLoan(ctx context.Context, loanID, newUserID, newTeacherName string) (*models.Loan, error) {
	var out *models.Loan
	err := r.txn(ctx, func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.First(&loan, "id = ?", loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now().UTC()
		prior := loan.TeacherName
		entry := &models.HistoryEntry{
			ID:              uuid.NewString(),
			LoanID:          loan.ID,
			UserID:          loan.UserID,
			TeacherName:     prior,
			Units:           append(models.UnitList{}, loan.Units...),
			Day:             loan.Day,
			StartTime:       loan.StartTime,
			Status:          models.StatusTransferred,
			TransferredAt:   &now,
			TransferredTo:   &newTeacherName,
			TransferredFrom: &prior,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		loan.UserID = newUserID
		loan.TeacherName = newTeacherName
		loan.TransferredFrom = &prior
		if err := tx.Model(&loan).Updates(map[string]any{
			"user_id":          newUserID,
			"teacher_name":     newTeacherName,
			"transferred_from": prior,
		}).Error; err != nil {
			return err
		}
		out = &loan
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// ListActiveLoans returns every open loan, newest first.
func (r *Repo) ListActiveLoans(ctx context.Context) ([]models.Loan, error) {
	var ls []models.Loan
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&ls).Error; err != nil {
		return nil, classify(err)
	}
	return ls, nil
}

// ListLoansForUser returns the caller's open loans, newest first.
func (r *Repo) ListLoansForUser(ctx context.Context, userID string) ([]models.Loan, error) {
	var ls []models.Loan
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ls).Error
	if err != nil {
		return nil, classify(err)
	}
	return ls, nil
}
