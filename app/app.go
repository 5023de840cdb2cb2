package app

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"school_booking_tool/db"
	"school_booking_tool/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Aliases so handlers stay short.
type Ctx = gin.Context
type H = gin.H

// App aggregates the shared dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	appSess *session.AppSessionStore
}

// Config comes from environment variables.
type Config struct {
	RedisAddr  string
	RedisPwd   string
	WebOrigin  string
	SessionTTL time.Duration

	// TechEmail is the hardcoded privileged account: always admin, never
	// deletable.
	TechEmail string

	FleetSize          int
	StrictReservations bool

	FCMEndpoint  string
	FCMServerKey string
	PollInterval time.Duration
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

func MustNew() *App {
	cfg := loadConfig()

	dbConn := db.ConnectDB()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router: r, DB: dbConn, RDB: rdb, Config: cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	getInt := func(k string, def int) int {
		if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
			return n
		}
		return def
	}
	getBool := func(k string, def bool) bool {
		if b, err := strconv.ParseBool(os.Getenv(k)); err == nil {
			return b
		}
		return def
	}

	return Config{
		RedisAddr:          get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:           os.Getenv("REDIS_PASSWORD"),
		WebOrigin:          get("WEB_ORIGIN", "http://localhost:3000"),
		SessionTTL:         time.Duration(getInt("SESSION_TTL_SECONDS", 86400)) * time.Second,
		TechEmail:          get("TECH_EMAIL", "mersoficial@gmail.com"),
		FleetSize:          getInt("FLEET_SIZE", db.DefaultFleetSize),
		StrictReservations: getBool("STRICT_RESERVATIONS", true),
		FCMEndpoint:        os.Getenv("FCM_ENDPOINT"),
		FCMServerKey:       os.Getenv("FCM_SERVER_KEY"),
		PollInterval:       time.Duration(getInt("NOTIFY_POLL_SECONDS", 30)) * time.Second,
	}
}
