// Package database provides connection setup for MariaDB and Redis.
// This file validates migration SQL files to catch schema mismatches early.
package database

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/pigmentlab/swatch/hexcolor"
)

// migrationsDir returns the absolute path to db/migrations/ from the project root.
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	// thisFile is internal/database/migrate_test.go, project root is two dirs up.
	projectRoot := filepath.Join(filepath.Dir(thisFile), "..", "..")
	dir := filepath.Join(projectRoot, "db", "migrations")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("migrations directory not found at %s: %v", dir, err)
	}
	return dir
}

// TestMigrations_HexLiterals scans all .up.sql migration files for hex
// color string literals (column defaults, seed data) and validates them
// with hexcolor.IsValidHex. A bad literal would otherwise surface much
// later as a black swatch (the parser's silent fallback), which is
// miserable to debug.
func TestMigrations_HexLiterals(t *testing.T) {
	dir := migrationsDir(t)
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no migration files found")
	}

	// Match '#...' string literals that look like color values.
	colorPattern := regexp.MustCompile(`'(#[0-9a-fA-F]*)'`)

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}

		matches := colorPattern.FindAllStringSubmatch(string(data), -1)
		for _, match := range matches {
			if !hexcolor.IsValidHex(match[1]) {
				t.Errorf("%s: invalid hex color literal %q",
					filepath.Base(f), match[1])
			}
		}
	}
}

// TestMigrations_ColorColumnWidth ensures palette color columns are wide
// enough for a #-prefixed 6-digit value. CHAR(7) is the contract; anything
// narrower would truncate stored colors.
func TestMigrations_ColorColumnWidth(t *testing.T) {
	dir := migrationsDir(t)
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}

	colPattern := regexp.MustCompile(`(?i)hex_value\s+CHAR\((\d+)\)`)

	found := false
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}
		for _, match := range colPattern.FindAllStringSubmatch(string(data), -1) {
			found = true
			if match[1] != "7" {
				t.Errorf("%s: hex_value column is CHAR(%s), want CHAR(7)",
					filepath.Base(f), match[1])
			}
		}
	}
	if !found {
		t.Error("no hex_value column definition found in migrations")
	}
}

// TestMigrations_UpDownPairs ensures every .up.sql has a matching .down.sql.
func TestMigrations_UpDownPairs(t *testing.T) {
	dir := migrationsDir(t)
	upFiles, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing up files: %v", err)
	}

	for _, up := range upFiles {
		down := strings.Replace(up, ".up.sql", ".down.sql", 1)
		if _, err := os.Stat(down); err != nil {
			t.Errorf("missing down migration for %s", filepath.Base(up))
		}
	}
}
