package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/crickstat/xfactor/internal/platform/dsn"
)

const usageText = `usage:
  migration up           apply every pending migration
  migration down [n]     roll back n migrations (default 1)
  migration version      print the current schema version
  migration force <v>    mark version v applied without running it`

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, usageText)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	m, err := newMigrator()
	if err != nil {
		log.Fatal(err)
	}

	runErr := run(m, flag.Args())
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		log.Printf("close migrator: source=%v db=%v", srcErr, dbErr)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

func newMigrator() (*migrate.Migrate, error) {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return nil, errors.New("DB_URL is required")
	}
	dbURL = dsn.Normalize(dbURL, envBool("DB_DISABLE_PREPARED_BINARY_RESULT"))

	dir, err := migrationsDir()
	if err != nil {
		return nil, err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), dbURL)
	if err != nil {
		return nil, fmt.Errorf("create migrator for %s: %w", dir, err)
	}
	return m, nil
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				log.Print("schema already current")
				return nil
			}
			return err
		}
		log.Print("migrations applied")
		return nil

	case "down":
		steps := 1
		if len(args) > 1 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil || parsed <= 0 {
				return fmt.Errorf("invalid down steps %q", args[1])
			}
			steps = parsed
		}
		if err := m.Steps(-steps); err != nil {
			return err
		}
		log.Printf("rolled back %d migration(s)", steps)
		return nil

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("no migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d dirty: %t\n", version, dirty)
		return nil

	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version argument")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil || version < 0 {
			return fmt.Errorf("invalid version %q", args[1])
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		log.Printf("forced version to %d", version)
		return nil

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// migrationsDir prefers MIGRATIONS_DIR, then the repo-relative directory,
// then the path the container image ships migrations at.
func migrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}

	return "", errors.New("migration directory not found (set MIGRATIONS_DIR or run from the repo root)")
}

func envBool(key string) bool {
	switch strings.TrimSpace(strings.ToLower(os.Getenv(key))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}
