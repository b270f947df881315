// connection.go
//
// Data service for the tutor-buddy tutoring dashboard
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of tutorbuddy.
// tutorbuddy is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// tutorbuddy is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with tutorbuddy.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/localnerve/tutorbuddy/internal/config"
	"github.com/localnerve/tutorbuddy/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLDSN builds the go-sql-driver DSN, over the Cloud SQL unix socket in production
// and over tcp otherwise.
func MySQLDSN(cfg *config.Config) string {
	mc := mysqldriver.NewConfig()
	mc.User = cfg.DBUser
	mc.Passwd = cfg.DBPassword
	mc.DBName = cfg.DBDatabase
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Timeout = cfg.DBConnectTimeout
	mc.Params = map[string]string{"charset": "utf8mb4"}

	if cfg.UsesSocket() {
		mc.Net = "unix"
		mc.Addr = cfg.SocketPath()
	} else {
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
	}

	return mc.FormatDSN()
}

// Dialector selects the gorm dialector for the configured DB_TYPE
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "mysql", "mariadb":
		return mysql.Open(MySQLDSN(cfg)), nil

	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC connect_timeout=%d",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBDatabase,
			cfg.DBPort,
			int(cfg.DBConnectTimeout.Seconds()),
		)
		return postgres.Open(dsn), nil

	case "sqlite":
		// For SQLite, DBDatabase is the file path
		return sqlite.Open(cfg.DBDatabase), nil

	case "sqlserver", "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBDatabase,
		)
		return sqlserver.Open(dsn), nil
	}

	return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
}

// LogLevel maps DB_LOG_LEVEL to the gorm logger level
func LogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

// Connect establishes a database connection based on the configured DB_TYPE
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(LogLevel(cfg.DBLogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBConnectionLimit)
	sqlDB.SetMaxIdleConns(max(cfg.DBConnectionLimit/2, 1))

	ctx := context.Background()
	if cfg.DBConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DBConnectTimeout)
		defer cancel()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	log.Printf("Connected to %s database: %s (mode %s)", cfg.DBType, cfg.DBDatabase, cfg.Mode)

	return db, nil
}

// AutoMigrate creates or updates the configured tables
func AutoMigrate(db *gorm.DB, tables config.Tables) error {
	migrations := []struct {
		table string
		model interface{}
	}{
		{tables.Users, &models.User{}},
		{tables.Tutors, &models.Tutor{}},
		{tables.Students, &models.Student{}},
		{tables.Batches, &models.Batch{}},
		{tables.TutorBatchMap, &models.TutorBatchMap{}},
		{tables.BatchStudentMap, &models.BatchStudentMap{}},
		{tables.Payments, &models.Payment{}},
	}

	for _, m := range migrations {
		if err := db.Table(m.table).AutoMigrate(m.model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", m.table, err)
		}
	}
	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
