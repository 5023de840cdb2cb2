package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"school_booking_tool/app"
	"school_booking_tool/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserController struct{ *Srv }

func NewUserController(s *Srv) *UserController { return &UserController{Srv: s} }

// GET /api/users?q=alice&page=1&size=20
func (uc *UserController) ListUsers(c *gin.Context) {
	q := c.Query("q")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := uc.Repo.ListUsers(c.Request.Context(), q, page, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"total": res.Total,
		"users": res.Users,
	})
}

// GET /api/users/:id
func (uc *UserController) GetUser(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid uuid"})
		return
	}
	user, err := uc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": user})
}

// PUT /api/users/:id: admin edits name/role/department.
func (uc *UserController) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	var in struct {
		Name       *string `json:"name"`
		Role       *string `json:"role"`
		Department *string `json:"department"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	target, err := uc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	// The tech account keeps its privileges no matter what.
	if strings.EqualFold(target.Email, uc.Cfg.TechEmail) && in.Role != nil && *in.Role != "admin" {
		c.JSON(http.StatusForbidden, app.H{"error": "cannot demote the tech account"})
		return
	}

	user, err := uc.Repo.UpdateUser(c.Request.Context(), id, db.UpdateUserInput{
		Name:       in.Name,
		Role:       in.Role,
		Department: in.Department,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": user})
}

// DELETE /api/users/:id
func (uc *UserController) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	// Self-deletion would lock the admin out mid-session.
	if r := currentUser(c); r.ID == id {
		c.JSON(http.StatusBadRequest, app.H{"error": "cannot delete yourself"})
		return
	}

	target, err := uc.Repo.FindUserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if strings.EqualFold(target.Email, uc.Cfg.TechEmail) {
		c.JSON(http.StatusForbidden, app.H{"error": "cannot delete the tech account"})
		return
	}

	if err := uc.Repo.DeleteUserByID(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	_ = uc.AppSess.RevokeAllForUser(c.Request.Context(), id)
	c.JSON(http.StatusOK, app.H{"ok": true})
}
