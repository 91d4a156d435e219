package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. Expects a MySQL instance
// on localhost:3306 with a 'wardsync_test' schema; tests are skipped when it
// is not available.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/wardsync_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB wipes the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"PatientOrders", "Patients"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables the integration tests need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createPatientsTable := `
	CREATE TABLE IF NOT EXISTS Patients (
		internalId VARCHAR(64) NOT NULL PRIMARY KEY,
		externalId VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		createdByUser VARCHAR(100) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createPatientOrdersTable := `
	CREATE TABLE IF NOT EXISTS PatientOrders (
		internalId VARCHAR(64) NOT NULL PRIMARY KEY,
		patientExternalId VARCHAR(64) NOT NULL,
		message TEXT NOT NULL,
		createdByUser VARCHAR(100) NOT NULL,
		updatedByUser VARCHAR(100) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_patient (patientExternalId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Patients", createPatientsTable},
		{"PatientOrders", createPatientOrdersTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
