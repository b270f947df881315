package database

import (
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/localnerve/tutorbuddy/internal/config"
	"gorm.io/gorm/logger"
)

func TestMySQLDSNUsesSocketInProduction(t *testing.T) {
	cfg := &config.Config{
		Mode:             config.ModeProd,
		DBType:           "mysql",
		DBInstance:       "proj:region:db",
		DBSocketDir:      "/cloudsql",
		DBDatabase:       "tutor-buddy",
		DBUser:           "app",
		DBPassword:       "pw",
		DBConnectTimeout: 5 * time.Second,
	}

	parsed, err := mysqldriver.ParseDSN(MySQLDSN(cfg))
	if err != nil {
		t.Fatalf("DSN did not parse: %v", err)
	}
	if parsed.Net != "unix" || parsed.Addr != "/cloudsql/proj:region:db" {
		t.Errorf("Expected unix socket, got %s(%s)", parsed.Net, parsed.Addr)
	}
	if parsed.DBName != "tutor-buddy" || parsed.User != "app" || parsed.Passwd != "pw" {
		t.Errorf("Unexpected credentials in DSN: %+v", parsed)
	}
	if !parsed.ParseTime {
		t.Error("Expected parseTime to be enabled")
	}
}

func TestMySQLDSNUsesHostOutsideProduction(t *testing.T) {
	cfg := &config.Config{
		Mode:       config.ModeDev,
		DBType:     "mysql",
		DBHost:     "db.local",
		DBPort:     "3307",
		DBDatabase: "tutor-buddy",
		DBUser:     "app",
	}

	parsed, err := mysqldriver.ParseDSN(MySQLDSN(cfg))
	if err != nil {
		t.Fatalf("DSN did not parse: %v", err)
	}
	if parsed.Net != "tcp" || parsed.Addr != "db.local:3307" {
		t.Errorf("Expected tcp host connection, got %s(%s)", parsed.Net, parsed.Addr)
	}
}

func TestDialectorRejectsUnknownType(t *testing.T) {
	if _, err := Dialector(&config.Config{DBType: "oracle"}); err == nil {
		t.Error("Expected an error for an unsupported database type")
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]logger.LogLevel{
		"silent": logger.Silent,
		"error":  logger.Error,
		"info":   logger.Info,
		"warn":   logger.Warn,
		"":       logger.Warn,
	}
	for in, want := range cases {
		if got := LogLevel(in); got != want {
			t.Errorf("LogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAutoMigrateCreatesConfiguredTables(t *testing.T) {
	cfg := &config.Config{
		Mode:              config.ModeTest,
		DBType:            "sqlite",
		DBDatabase:        "file:automigrate?mode=memory&cache=shared",
		DBConnectionLimit: 1,
		DBLogLevel:        "silent",
	}
	db, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer Close(db)

	tables, err := config.TablesForMode(config.ModeTest)
	if err != nil {
		t.Fatalf("TablesForMode failed: %v", err)
	}
	if err := AutoMigrate(db, tables); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	for _, name := range tables.All() {
		if !db.Migrator().HasTable(name) {
			t.Errorf("Expected table %s to exist", name)
		}
	}
	if db.Migrator().HasTable("users") {
		t.Error("Production users table should not be created in test mode")
	}
}
