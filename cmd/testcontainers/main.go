// main.go
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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/tutorbuddy/tests/helpers"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run the tutorbuddy database testcontainer with the environment variables from the .env file.
The production and test tables are created from the embedded DDL.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

Environment:
  DB_IMAGE          database image, for example mysql:8.4
  DB_TYPE           mysql or mariadb
  DB_PORT           database port inside the container (3306)
  DB_ROOT_PASSWORD  root password
  DB_DATABASE       database name (tutor-buddy)
  DB_USER           application user
  DB_PASSWORD       application password

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	if os.Getenv("DB_IMAGE") == "" {
		log.Fatalf("DB_IMAGE is required\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	started := make(chan *helpers.TestContainers, 1)
	go func() {
		testContainers, err := helpers.CreateAllTestContainers(nil)
		if err != nil {
			log.Fatalf("Failed to create test containers: %v\n", err)
		}
		started <- testContainers
	}()

	var testContainers *helpers.TestContainers
	select {
	case testContainers = <-started:
		log.Printf("Database listening on %s:%s, press Ctrl+C to stop\n", testContainers.DBHost, testContainers.DBPort)
		sig := <-sigs
		log.Printf("\nReceived signal: %v, terminating test containers...\n", sig)
	case sig := <-sigs:
		log.Printf("\nReceived signal: %v before startup completed\n", sig)
	}

	if testContainers != nil {
		testContainers.Terminate(nil)
	}
}
