package config

import (
	"fmt"
	"regexp"
)

// TestTableSuffix is appended to every table name in TEST mode
const TestTableSuffix = "_test"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Tables names the physical tables used by the data layer.
// Production and test schemas live side by side in one database and differ only by suffix.
type Tables struct {
	Users           string
	Tutors          string
	Students        string
	Batches         string
	TutorBatchMap   string
	BatchStudentMap string
	Payments        string
}

// DefaultTables returns the production table names
func DefaultTables() Tables {
	return Tables{
		Users:           "users",
		Tutors:          "tutors",
		Students:        "students",
		Batches:         "batches",
		TutorBatchMap:   "tutor_batch_map",
		BatchStudentMap: "batch_student_map",
		Payments:        "payments",
	}
}

// WithSuffix returns a copy of the tables with suffix appended to every name
func (t Tables) WithSuffix(suffix string) Tables {
	return Tables{
		Users:           t.Users + suffix,
		Tutors:          t.Tutors + suffix,
		Students:        t.Students + suffix,
		Batches:         t.Batches + suffix,
		TutorBatchMap:   t.TutorBatchMap + suffix,
		BatchStudentMap: t.BatchStudentMap + suffix,
		Payments:        t.Payments + suffix,
	}
}

// All returns every table name, parents first
func (t Tables) All() []string {
	return []string{t.Users, t.Tutors, t.Students, t.Batches, t.TutorBatchMap, t.BatchStudentMap, t.Payments}
}

// Validate rejects names that would need quoting; table names are interpolated into join clauses.
func (t Tables) Validate() error {
	for _, name := range t.All() {
		if !tableNamePattern.MatchString(name) {
			return fmt.Errorf("invalid table name %q", name)
		}
	}
	return nil
}

// TablesForMode selects the table set for a deployment mode
func TablesForMode(mode string) (Tables, error) {
	tables := DefaultTables()
	if mode == ModeTest {
		tables = tables.WithSuffix(TestTableSuffix)
	}
	if err := tables.Validate(); err != nil {
		return Tables{}, err
	}
	return tables, nil
}
