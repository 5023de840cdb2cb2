package routes

import (
	"time"

	"school_booking_tool/app"
	"school_booking_tool/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	roomCtl := controllers.NewRoomController(s)
	loanCtl := controllers.NewLoanController(s)
	invCtl := controllers.NewInventoryController(s)
	reportCtl := controllers.NewReportController(s)
	userCtl := controllers.NewUserController(s)
	notifyCtl := controllers.NewNotifyController(s)

	authMW := app.AuthRequired(s.AppSess, s.Repo, a.Config)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// Auth
	// ------------------------------
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}
	authed := auth.Group("", authMW, seenMW)
	{
		authed.POST("/logout", authCtl.Logout)
		authed.GET("/whoami", authCtl.Whoami)
		authed.POST("/fcm-token", authCtl.SaveFCMToken)
	}

	// ------------------------------
	// Lex room
	// ------------------------------
	rooms := r.Group("/api/rooms", authMW, seenMW)
	{
		rooms.GET("", roomCtl.List)
		rooms.POST("", roomCtl.Reserve)
		rooms.DELETE("/:id", roomCtl.Cancel)
	}

	// ------------------------------
	// Chromebook loans
	// ------------------------------
	loans := r.Group("/api/loans", authMW, seenMW)
	{
		loans.GET("", loanCtl.List)
		loans.POST("", loanCtl.Reserve)
		loans.POST("/:id/return", loanCtl.Return)
		loans.POST("/:id/transfer", loanCtl.Transfer)
	}

	// ------------------------------
	// Fleet inventory
	// ------------------------------
	inv := r.Group("/api/inventory", authMW, seenMW)
	{
		inv.GET("", invCtl.StatusBoard)
		inv.POST("/:id/defect", invCtl.ReportDefect)
	}
	invAdmin := r.Group("/api/inventory", authMW, adminMW)
	{
		invAdmin.DELETE("/:id/defect", invCtl.FixDefect)
		invAdmin.POST("/:id/maintenance", invCtl.ToggleMaintenance)
	}

	// ------------------------------
	// Reports + history (admin)
	// ------------------------------
	reports := r.Group("/api/reports", authMW, adminMW)
	{
		reports.GET("/dashboard", reportCtl.Dashboard)
		reports.GET("/monthly", reportCtl.Monthly)
		reports.GET("/history", reportCtl.History)
	}

	// ------------------------------
	// User management (admin)
	// ------------------------------
	users := r.Group("/api/users", authMW, adminMW)
	{
		users.GET("", userCtl.ListUsers)
		users.GET("/:id", userCtl.GetUser)
		users.PUT("/:id", userCtl.UpdateUser)
		users.DELETE("/:id", userCtl.DeleteUser)
	}

	// ------------------------------
	// Push fan-out (admin)
	// ------------------------------
	r.POST("/api/notify", authMW, adminMW, notifyCtl.Send)
}
