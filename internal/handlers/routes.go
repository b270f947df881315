package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/tutorbuddy/internal/config"
	"github.com/localnerve/tutorbuddy/internal/middleware"
	"github.com/localnerve/tutorbuddy/internal/services"
	"gorm.io/gorm"
)

// SessionMaxAge is the lifetime of the session cookie
const SessionMaxAge = 30 * 24 * time.Hour

// RegisterRoutes mounts the session, API and health routes on app
func RegisterRoutes(app *fiber.App, cfg *config.Config, db *gorm.DB, gw *services.Gateway) {
	sessionHandler := &SessionHandler{
		GW:           gw,
		Secret:       cfg.AuthCallbackSecret,
		CookieSecure: cfg.SessionCookieSecure,
		CookieMaxAge: SessionMaxAge,
	}
	userHandler := &UserHandler{GW: gw}
	tutorHandler := &TutorHandler{GW: gw}
	batchHandler := &BatchHandler{GW: gw}
	studentHandler := &StudentHandler{GW: gw}
	paymentHandler := &PaymentHandler{GW: gw}
	healthHandler := &HealthHandler{Cfg: cfg, DB: db}

	authUser := middleware.AuthUser(gw)
	requireTutor := middleware.RequireTutor()
	batchOwner := middleware.BatchOwner(gw)

	app.Get("/healthz", healthHandler.Health)

	// Session routes
	auth := app.Group("/auth")
	auth.Post("/session", sessionHandler.CreateSession)
	auth.Delete("/session", authUser, sessionHandler.DeleteSession)

	v1 := app.Group("/api/v1", middleware.APIVersion("1.0.0"), authUser)

	v1.Get("/user/profile", userHandler.GetProfile)
	v1.Get("/user/tutor", userHandler.IsTutor)

	v1.Get("/tutor/profile", tutorHandler.GetProfile)
	v1.Post("/tutor/profile", tutorHandler.CreateProfile)

	// Tutor-only routes
	v1.Get("/batches", requireTutor, batchHandler.ListBatches)
	v1.Post("/batches", requireTutor, batchHandler.CreateBatch)

	// Routes on a single batch require ownership
	batch := v1.Group("/batch/:batchId", requireTutor, batchOwner)
	batch.Delete("", batchHandler.DeleteBatch)
	batch.Get("/students", studentHandler.ListStudents)
	batch.Post("/students", studentHandler.AddStudent)
	batch.Get("/payments", paymentHandler.ListPayments)
	batch.Post("/student/:studentId/payments", paymentHandler.RecordPayment)
}
