package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MODE", "")
	t.Setenv("mode", "")
	t.Setenv("DB_TYPE", "mysql")
	t.Setenv("DB_USER", "tutor")
	t.Setenv("DB_INSTANCE", "")
	t.Setenv("AUTH_CALLBACK_SECRET", "secret")
	t.Setenv("DB_OPERATION_TIMEOUT", "")
}

func TestLoadDefaultsToProductionTables(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_INSTANCE", "project:region:instance")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mode != ModeProd {
		t.Errorf("Expected mode %s, got %s", ModeProd, cfg.Mode)
	}
	if cfg.Tables.Users != "users" || cfg.Tables.TutorBatchMap != "tutor_batch_map" {
		t.Errorf("Unexpected production tables: %+v", cfg.Tables)
	}
	if !cfg.UsesSocket() {
		t.Error("Expected production mysql to use the Cloud SQL socket")
	}
	if got := cfg.SocketPath(); got != "/cloudsql/project:region:instance" {
		t.Errorf("Unexpected socket path %q", got)
	}
	if cfg.DBOperationTimeout != 10*time.Second {
		t.Errorf("Expected default operation timeout 10s, got %v", cfg.DBOperationTimeout)
	}
}

func TestLoadLowerCaseModeSelectsTestTables(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("mode", "test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mode != ModeTest {
		t.Fatalf("Expected mode %s, got %s", ModeTest, cfg.Mode)
	}
	for _, name := range cfg.Tables.All() {
		if len(name) < len(TestTableSuffix) || name[len(name)-len(TestTableSuffix):] != TestTableSuffix {
			t.Errorf("Expected %q to carry the test suffix", name)
		}
	}
	if cfg.UsesSocket() {
		t.Error("Test mode must use a host connection")
	}
}

func TestLoadRequiresInstanceInProduction(t *testing.T) {
	setBaseEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("Expected an error without DB_INSTANCE in production")
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MODE", "staging")

	if _, err := Load(); err == nil {
		t.Fatal("Expected an error for an unknown mode")
	}
}

func TestLoadSqliteNeedsNoUser(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MODE", "DEV")
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_OPERATION_TIMEOUT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBOperationTimeout != 3*time.Second {
		t.Errorf("Expected 3s operation timeout, got %v", cfg.DBOperationTimeout)
	}
}

func TestTablesValidate(t *testing.T) {
	tables := DefaultTables().WithSuffix("-test")
	if err := tables.Validate(); err == nil {
		t.Error("Expected hyphenated table names to be rejected")
	}
	if err := DefaultTables().Validate(); err != nil {
		t.Errorf("Default tables should validate: %v", err)
	}
}
