package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/tutorbuddy/internal/config"
	"github.com/localnerve/tutorbuddy/internal/database"
	"gorm.io/gorm"
)

func main() {
	mode := flag.String("mode", config.ModeProd, "table set to inspect: PROD, DEV or TEST")
	flag.Parse()

	tables, err := config.TablesForMode(strings.ToUpper(*mode))
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	if err := database.AutoMigrate(db, tables); err != nil {
		log.Fatal(err)
	}

	for _, table := range tables.All() {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var schema string
		db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&schema)
		fmt.Println(schema)

		var indexes []string
		db.Raw("SELECT sql FROM sqlite_master WHERE type = 'index' AND tbl_name = ? AND sql IS NOT NULL", table).Scan(&indexes)
		for _, idx := range indexes {
			fmt.Println(idx)
		}
	}
}
