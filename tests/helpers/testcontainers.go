// testcontainers.go
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

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/localnerve/tutorbuddy/data"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContainers holds the containers started for a test run
type TestContainers struct {
	Network     *testcontainers.DockerNetwork
	DBContainer testcontainers.Container

	// DBHost and DBPort reach the database from the host running the tests
	DBHost string
	DBPort string
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Database: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// CreateAllTestContainers starts the database container described by the environment
// (DB_IMAGE, DB_TYPE, DB_PORT, DB_ROOT_PASSWORD, DB_DATABASE, DB_USER, DB_PASSWORD)
// and loads the production and test tables into it.
func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	// Create a network
	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	testContainers.Network = nw
	networkName := nw.Name

	dbType := getEnv("DB_TYPE", "mysql")
	dbNetworkName := getEnv("DB_HOST", "db")
	tcpDbPort, err := nat.NewPort("tcp", getEnv("DB_PORT", "3306"))
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to create DB port")
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        os.Getenv("DB_IMAGE"),
			ExposedPorts: []string{string(tcpDbPort)},
			Env:          getDBInitEnvMap(dbType),
			WaitingFor:   wait.ForListeningPort(tcpDbPort).WithStartupTimeout(90 * time.Second),
			Networks:     []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to start Database")
	}
	testContainers.DBContainer = dbContainer

	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to get Database host")
	}
	dbPort, err := dbContainer.MappedPort(ctx, tcpDbPort)
	if err != nil {
		testContainers.Terminate(t)
		exitWithError(t, err, "Failed to get Database port")
	}
	testContainers.DBHost = dbHost
	testContainers.DBPort = dbPort.Port()

	switch dbType {
	case "mysql", "mariadb":
		if err := performMySQLDBInit(t, testContainers, dbHost, dbPort); err != nil {
			testContainers.Terminate(t)
			exitWithError(t, err, "Failed to initialize database")
		}
	default:
		testContainers.Terminate(t)
		exitWithError(t, fmt.Errorf("unsupported DB_TYPE %q", dbType), "Failed to initialize database")
	}

	// Log the localhost and mapped ports for test processes
	logMessage(t, "DB_HOST=%s", dbHost)
	logMessage(t, "DB_PORT=%s", dbPort.Port())

	logMessage(t, "Tutorbuddy testcontainer started successfully")
	return testContainers, nil
}

func getDBInitEnvMap(dbType string) map[string]string {
	switch dbType {
	case "mariadb":
		return map[string]string{
			"MARIADB_ROOT_PASSWORD": os.Getenv("DB_ROOT_PASSWORD"),
			"MARIADB_DATABASE":      getEnv("DB_DATABASE", "tutor-buddy"),
			"MARIADB_USER":          os.Getenv("DB_USER"),
			"MARIADB_PASSWORD":      os.Getenv("DB_PASSWORD"),
		}
	}
	return map[string]string{
		"MYSQL_ROOT_PASSWORD": os.Getenv("DB_ROOT_PASSWORD"),
		"MYSQL_DATABASE":      getEnv("DB_DATABASE", "tutor-buddy"),
		"MYSQL_USER":          os.Getenv("DB_USER"),
		"MYSQL_PASSWORD":      os.Getenv("DB_PASSWORD"),
	}
}

// rootDSN builds the root connection string for the mapped database port
func rootDSN(dbHost string, dbPort nat.Port, database string) string {
	cfg := mysqldriver.NewConfig()
	cfg.User = "root"
	cfg.Passwd = os.Getenv("DB_ROOT_PASSWORD")
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%s", dbHost, dbPort.Port())
	cfg.DBName = database
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

func performMySQLDBInit(t *testing.T, testContainers *TestContainers, dbHost string, dbPort nat.Port) error {
	database := getEnv("DB_DATABASE", "tutor-buddy")

	db, err := sql.Open("mysql", rootDSN(dbHost, dbPort, database))
	if err != nil {
		return fmt.Errorf("failed to connect to %s for setup: %w", database, err)
	}
	defer db.Close()

	// Wait for connection to be really ready
	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("database not ready after 30 seconds: %w", err)
	}

	if err := executeSQL(db, data.InitdbMySQLTables); err != nil {
		return fmt.Errorf("failed to execute tables init sql: %w", err)
	}
	if err := executeSQL(db, data.InitdbMySQLTestTables); err != nil {
		return fmt.Errorf("failed to execute test tables init sql: %w", err)
	}

	user := os.Getenv("DB_USER")
	if user != "" {
		_, err = db.Exec(fmt.Sprintf("GRANT ALL PRIVILEGES ON `%s`.* TO '%s'@'%%'", database, user))
		if err != nil {
			return fmt.Errorf("failed to grant privileges to %s: %w", user, err)
		}
		if _, err := db.Exec("FLUSH PRIVILEGES"); err != nil {
			return fmt.Errorf("failed to flush privileges: %w", err)
		}
	}

	logMessage(t, "Initialized %s tables in %s", os.Getenv("DB_TYPE"), database)
	return nil
}

// executeSQL runs every statement of a script, skipping -- comments
func executeSQL(db *sql.DB, script string) error {
	lines := strings.Split(script, "\n")

	var ncls []string
	for _, l := range lines {
		ncls = append(ncls, excludeComment(l))
	}

	l := strings.Join(ncls, "\n")
	queries := strings.Split(l, ";")

	for _, q := range queries {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}
	return nil
}

func excludeComment(line string) string {
	d := "\""
	s := "'"
	c := "--"

	var nc string
	ck := line
	mx := len(line) + 1

	for {
		if len(ck) == 0 {
			return nc
		}

		di := strings.Index(ck, d)
		si := strings.Index(ck, s)
		ci := strings.Index(ck, c)

		if di < 0 {
			di = mx
		}
		if si < 0 {
			si = mx
		}
		if ci < 0 {
			ci = mx
		}

		var ei int

		if di < si && di < ci {
			nc += ck[:di+1]
			ck = ck[di+1:]
			ei = strings.Index(ck, d)
		} else if si < di && si < ci {
			nc += ck[:si+1]
			ck = ck[si+1:]
			ei = strings.Index(ck, s)
		} else if ci < di && ci < si {
			return nc + ck[:ci]
		} else {
			return nc + ck
		}

		nc += ck[:ei+1]
		ck = ck[ei+1:]
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
