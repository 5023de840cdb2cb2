package db

import (
	"context"
	"errors"
	"strings"

	"school_booking_tool/models"

	"gorm.io/gorm"
)

func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	return classify(r.DB.WithContext(ctx).Create(u).Error)
}

func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, classify(err)
	}
	return &u, nil
}

func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.DB.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, classify(err)
	}
	return &u, nil
}

// Login/seen bookkeeping uses database time to avoid clock skew between
// instances.

func (r *Repo) TouchUserLogin(ctx context.Context, userID, ip, ua string) error {
	return classify(r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"last_seen_at":  gorm.Expr("CURRENT_TIMESTAMP"),
			"login_count":   gorm.Expr("COALESCE(login_count, 0) + 1"),
			"last_login_ip": ip,
			"last_login_ua": ua,
		}).Error)
}

func (r *Repo) TouchUserSeen(ctx context.Context, userID string) error {
	return classify(r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen_at", gorm.Expr("CURRENT_TIMESTAMP")).Error)
}

// List (paged + keyword over name/email)
type ListUsersResult struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
}

func (r *Repo) ListUsers(ctx context.Context, q string, page, size int) (ListUsersResult, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.User{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListUsersResult{}, classify(err)
	}

	var users []models.User
	if err := tx.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&users).Error; err != nil {
		return ListUsersResult{}, classify(err)
	}
	return ListUsersResult{Users: users, Total: total}, nil
}

type UpdateUserInput struct {
	Name       *string
	Role       *string
	Department *string
}

func (r *Repo) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Role != nil {
		if *in.Role != models.RoleAdmin && *in.Role != models.RoleTeacher {
			return nil, validationf("unknown role %q", *in.Role)
		}
		updates["role"] = *in.Role
	}
	if in.Department != nil {
		updates["department"] = *in.Department
	}
	if len(updates) == 0 {
		return nil, validationf("nothing to update")
	}

	var out *models.User
	err := r.txn(ctx, func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&u).Updates(updates).Error; err != nil {
			return err
		}
		out = &u
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (r *Repo) DeleteUserByID(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.User{ID: id})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) SaveFCMToken(ctx context.Context, userID, token string) error {
	return classify(r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("fcm_token", token).Error)
}

// AdminFCMTokens lists the registered push targets of administrators for the
// notification fan-out. techEmail covers the hardcoded privileged account
// whose role field may be unset.
func (r *Repo) AdminFCMTokens(ctx context.Context, techEmail string) ([]string, error) {
	var tokens []string
	err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("fcm_token <> ''").
		Where("role = ? OR LOWER(email) = ?", models.RoleAdmin, strings.ToLower(techEmail)).
		Pluck("fcm_token", &tokens).Error
	if err != nil {
		return nil, classify(err)
	}
	return tokens, nil
}
