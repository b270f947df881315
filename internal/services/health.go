package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/localnerve/tutorbuddy/internal/config"
	"github.com/localnerve/tutorbuddy/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Server       string            `json:"server,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck checks database connectivity and, when serverURL is not empty, that the
// HTTP server accepts connections.
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, serverURL string) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else if err := sqlDB.PingContext(ctx); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Printf("Health check failed - database ping: %v", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
		result.Details["mode"] = cfg.Mode
		result.Details["users_table"] = cfg.Tables.Users
	}

	if serverURL != "" {
		if err := utils.PingService(serverURL, 1500*time.Millisecond); err != nil {
			result.Status = "unhealthy"
			result.Server = "unreachable"
			result.Details["server_error"] = err.Error()
			if result.ErrorMessage == "" {
				result.ErrorMessage = fmt.Sprintf("Server ping failed: %v", err)
			} else {
				result.ErrorMessage += fmt.Sprintf("; Server ping failed: %v", err)
			}
			log.Printf("Health check failed - server ping: %v", err)
		} else {
			result.Server = "ok"
		}
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
