// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"school_booking_tool/app"
	"school_booking_tool/db"
	"school_booking_tool/notify"
	"school_booking_tool/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Srv bundles what every controller needs.
type Srv struct {
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	Broadcast *notify.AdminBroadcast
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	repo.FleetSize = a.Config.FleetSize
	repo.Strict = a.Config.StrictReservations

	return &Srv{
		Repo:    repo,
		AppSess: a.AppSessions(),
		Broadcast: &notify.AdminBroadcast{
			Tokens: &adminTokens{repo: repo, techEmail: a.Config.TechEmail},
			Sender: notify.NewFCMSender(a.Config.FCMEndpoint, a.Config.FCMServerKey),
		},
		Cfg: a.Config,
	}
}

// adminTokens binds the repo token query to the notify.TokenLister shape.
type adminTokens struct {
	repo      *db.Repo
	techEmail string
}

func (t *adminTokens) AdminFCMTokens(ctx context.Context) ([]string, error) {
	return t.repo.AdminFCMTokens(ctx, t.techEmail)
}

// --- helpers ---

func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.Cfg.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// issueSession creates the Redis session, sets the cookie and stamps the
// login snapshot.
func (s *Srv) issueSession(ctx context.Context, w http.ResponseWriter, userID, ip, ua string) error {
	_ = s.Repo.TouchUserLogin(ctx, userID, ip, ua) // bookkeeping, not blocking
	id := uuid.NewString()
	if err := s.AppSess.Create(ctx, id, userID); err != nil {
		return err
	}
	s.setAppCookie(w, id, s.Cfg.SessionTTL)
	return nil
}

// requester reads the identity the auth middleware stored.
type requester struct {
	ID      string
	Name    string
	Email   string
	IsAdmin bool
}

func currentUser(c *gin.Context) requester {
	var r requester
	if v, ok := c.Get("userID"); ok {
		r.ID, _ = v.(string)
	}
	if v, ok := c.Get("userName"); ok {
		r.Name, _ = v.(string)
	}
	if v, ok := c.Get("userEmail"); ok {
		r.Email, _ = v.(string)
	}
	if v, ok := c.Get("isAdmin"); ok {
		r.IsAdmin = v == true
	}
	return r
}

// fail maps ledger/inventory errors onto HTTP statuses.
func fail(c *gin.Context, err error) {
	var ve *db.ValidationError
	var ce *db.UnitConflictError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, app.H{"error": ve.Reason})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, app.H{"error": "units already loaned", "units": ce.Units})
	case errors.Is(err, db.ErrSlotTaken):
		c.JSON(http.StatusConflict, app.H{"error": "time slot already booked"})
	case errors.Is(err, db.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, app.H{"error": "conflicting update, try again"})
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
	case errors.Is(err, db.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, app.H{"error": "forbidden"})
	case errors.Is(err, db.ErrBackendUnavailable):
		c.JSON(http.StatusServiceUnavailable, app.H{"error": "backend unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}
