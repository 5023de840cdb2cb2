package main

import (
	"context"
	"log"
	"os"

	"school_booking_tool/app"
	"school_booking_tool/config"
	"school_booking_tool/controllers"
	"school_booking_tool/routes"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	// Ledger watcher → admin push notifications.
	poller := controllers.NewLedgerPoller(application)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
