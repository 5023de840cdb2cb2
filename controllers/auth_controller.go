package controllers

import (
	"errors"
	"net/http"
	"strings"

	"school_booking_tool/app"
	"school_booking_tool/db"
	"school_booking_tool/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Name     string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	if _, err := ac.Repo.FindUserByEmail(c.Request.Context(), in.Email); err == nil {
		c.JSON(http.StatusConflict, app.H{"error": "email already registered"})
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		fail(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		Role:         models.RoleTeacher,
		PasswordHash: hash,
	}
	if err := ac.Repo.CreateUser(c.Request.Context(), u); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"user": u})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	u, err := ac.Repo.FindUserByEmail(c.Request.Context(), in.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
			return
		}
		fail(c, err)
		return
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	if err := ac.issueSession(c.Request.Context(), c.Writer, u.ID, c.ClientIP(), c.Request.UserAgent()); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"user":    u,
		"isAdmin": app.IsAdminUser(ac.Cfg, u.Email, u.Role),
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(ac.Cfg.WebOrigin, "https://"),
	})
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/auth/whoami
func (ac *AuthController) Whoami(c *gin.Context) {
	r := currentUser(c)
	u, err := ac.Repo.FindUserByID(c.Request.Context(), r.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u, "isAdmin": r.IsAdmin})
}

// POST /api/auth/fcm-token registers the caller's push target.
func (ac *AuthController) SaveFCMToken(c *gin.Context) {
	var in struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	r := currentUser(c)
	if err := ac.Repo.SaveFCMToken(c.Request.Context(), r.ID, in.Token); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}
