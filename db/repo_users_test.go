package db

import (
	"context"
	"errors"
	"testing"

	"school_booking_tool/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testUser(email, name, role string) *models.User {
	return &models.User{ID: uuid.NewString(), Email: email, Name: name, Role: role}
}

func TestCreateAndFindUser(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	u := testUser("ana@escola.br", "Ana", models.RoleTeacher)
	assert.NoError(t, repo.CreateUser(ctx, u))

	got, err := repo.FindUserByEmail(ctx, "ANA@escola.br")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.FindUserByEmail(ctx, "nobody@escola.br")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = repo.FindUserByID(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListUsersSearch(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_ = repo.CreateUser(ctx, testUser("ana@escola.br", "Ana Souza", models.RoleTeacher))
	_ = repo.CreateUser(ctx, testUser("bruno@escola.br", "Bruno Lima", models.RoleTeacher))

	res, err := repo.ListUsers(ctx, "souza", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	if assert.Len(t, res.Users, 1) {
		assert.Equal(t, "Ana Souza", res.Users[0].Name)
	}

	res, _ = repo.ListUsers(ctx, "", 1, 20)
	assert.Equal(t, int64(2), res.Total)
}

func TestUpdateUser(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	u := testUser("ana@escola.br", "Ana", models.RoleTeacher)
	_ = repo.CreateUser(ctx, u)

	role := models.RoleAdmin
	dept := "Matemática"
	got, err := repo.UpdateUser(ctx, u.ID, UpdateUserInput{Role: &role, Department: &dept})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.Equal(t, "Matemática", got.Department)

	bad := "principal"
	_, err = repo.UpdateUser(ctx, u.ID, UpdateUserInput{Role: &bad})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = repo.UpdateUser(ctx, u.ID, UpdateUserInput{})
	assert.ErrorAs(t, err, &ve)

	name := "X"
	_, err = repo.UpdateUser(ctx, "missing", UpdateUserInput{Name: &name})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteUser(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	u := testUser("ana@escola.br", "Ana", models.RoleTeacher)
	_ = repo.CreateUser(ctx, u)

	assert.NoError(t, repo.DeleteUserByID(ctx, u.ID))
	assert.True(t, errors.Is(repo.DeleteUserByID(ctx, u.ID), ErrNotFound))
}

func TestAdminFCMTokens(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	admin := testUser("admin@escola.br", "Admin", models.RoleAdmin)
	admin.FCMToken = "tok-admin"
	tech := testUser("tech@escola.br", "Tech", models.RoleTeacher)
	tech.FCMToken = "tok-tech"
	teacher := testUser("ana@escola.br", "Ana", models.RoleTeacher)
	teacher.FCMToken = "tok-ana"
	noToken := testUser("mudo@escola.br", "Mudo", models.RoleAdmin)

	for _, u := range []*models.User{admin, tech, teacher, noToken} {
		assert.NoError(t, repo.CreateUser(ctx, u))
	}

	// tech email counts as admin even with a teacher role
	tokens, err := repo.AdminFCMTokens(ctx, "TECH@escola.br")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"tok-admin", "tok-tech"}, tokens)
}
