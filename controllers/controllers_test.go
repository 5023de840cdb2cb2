package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"school_booking_tool/app"
	"school_booking_tool/db"
	"school_booking_tool/models"
	"school_booking_tool/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestSrv(t *testing.T) *Srv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal("failed to connect test database")
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &Srv{
		Repo: db.NewRepo(conn),
		Cfg:  app.Config{TechEmail: "tech@escola.br", WebOrigin: "http://localhost:3000"},
	}
}

func jsonReq(method, target string, payload any) *http.Request {
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asTeacher(c *gin.Context, id, name string) {
	c.Set("userID", id)
	c.Set("userName", name)
	c.Set("userEmail", name+"@escola.br")
	c.Set("isAdmin", false)
}

func TestLoanReserveAndReturnHandlers(t *testing.T) {
	s := setupTestSrv(t)
	lc := NewLoanController(s)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonReq("POST", "/api/loans", gin.H{
		"day": "2024-06-01", "start": "08:20-09:10", "chromebooks": []int{1, 2},
	})
	asTeacher(c, "a", "Ana")
	lc.Reserve(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	var loan models.Loan
	_ = json.Unmarshal(w.Body.Bytes(), &loan)
	assert.NotEmpty(t, loan.ID)

	// conflicting reservation maps to 409 with the offending units
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = jsonReq("POST", "/api/loans", gin.H{
		"day": "2024-06-02", "start": "09:10-10:00", "chromebooks": []int{2, 3},
	})
	asTeacher(c, "b", "Bruno")
	lc.Reserve(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	var conflict map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &conflict)
	assert.Equal(t, []any{float64(2)}, conflict["units"])

	// partial return
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = jsonReq("POST", "/api/loans/"+loan.ID+"/return", gin.H{"chromebooks": []int{1}})
	c.Params = gin.Params{{Key: "id", Value: loan.ID}}
	asTeacher(c, "a", "Ana")
	lc.Return(c)
	assert.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Full bool        `json:"full"`
		Loan models.Loan `json:"loan"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	assert.False(t, res.Full)
	assert.Equal(t, models.UnitList{2}, res.Loan.Units)

	// returning a missing loan is a 404, not a silent no-op
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = jsonReq("POST", "/api/loans/missing/return", gin.H{})
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	asTeacher(c, "a", "Ana")
	lc.Return(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoomReserveConflictHandler(t *testing.T) {
	s := setupTestSrv(t)
	rc := NewRoomController(s)
	day := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonReq("POST", "/api/rooms", gin.H{"day": day, "start": "09:00", "end": "10:00"})
	asTeacher(c, "a", "Ana")
	rc.Reserve(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = jsonReq("POST", "/api/rooms", gin.H{"day": day, "start": "09:30", "end": "10:30"})
	asTeacher(c, "b", "Bruno")
	rc.Reserve(c)
	assert.Equal(t, http.StatusConflict, w.Code)

	// over the 180-minute cap
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = jsonReq("POST", "/api/rooms", gin.H{"day": day, "start": "12:00", "end": "15:01"})
	asTeacher(c, "a", "Ana")
	rc.Reserve(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotifySendHandler(t *testing.T) {
	s := setupTestSrv(t)

	admin := &models.User{
		ID: uuid.NewString(), Email: "admin@escola.br", Name: "Admin",
		Role: models.RoleAdmin, FCMToken: "tok-admin",
	}
	assert.NoError(t, s.Repo.CreateUser(context.Background(), admin))

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	s.Broadcast = &notify.AdminBroadcast{
		Tokens: &adminTokens{repo: s.Repo, techEmail: s.Cfg.TechEmail},
		Sender: notify.NewFCMSender(gateway.URL, "secret"),
	}
	nc := NewNotifyController(s)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonReq("POST", "/api/notify", gin.H{"title": "Aviso", "body": "Reunião às 10h"})
	nc.Send(c)
	assert.Equal(t, http.StatusOK, w.Code)
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(1), out["sentCount"])
	assert.Equal(t, float64(0), out["failureCount"])
}

func TestNotifySendHandlerMissingFields(t *testing.T) {
	s := setupTestSrv(t)
	s.Broadcast = &notify.AdminBroadcast{
		Tokens: &adminTokens{repo: s.Repo, techEmail: s.Cfg.TechEmail},
		Sender: notify.NewFCMSender("", "secret"),
	}
	nc := NewNotifyController(s)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonReq("POST", "/api/notify", gin.H{"title": "sem corpo"})
	nc.Send(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotifySendHandlerNotConfigured(t *testing.T) {
	s := setupTestSrv(t)
	s.Broadcast = &notify.AdminBroadcast{
		Tokens: &adminTokens{repo: s.Repo, techEmail: s.Cfg.TechEmail},
		Sender: notify.NewFCMSender("", ""),
	}
	nc := NewNotifyController(s)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonReq("POST", "/api/notify", gin.H{"title": "a", "body": "b"})
	nc.Send(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNotifyEndpointRejectsNonPost(t *testing.T) {
	s := setupTestSrv(t)
	s.Broadcast = &notify.AdminBroadcast{
		Tokens: &adminTokens{repo: s.Repo, techEmail: s.Cfg.TechEmail},
		Sender: notify.NewFCMSender("", "secret"),
	}
	nc := NewNotifyController(s)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.POST("/api/notify", nc.Send)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/notify", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
