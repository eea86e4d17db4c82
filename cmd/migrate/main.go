// Command migrate manages the TrustNet schema. It wraps golang-migrate
// with the same .env conventions the API server uses, so `go run
// ./cmd/migrate` against a fresh database brings up the full schema.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	_ = godotenv.Load()

	var (
		command string
		steps   int
		dir     string
		dbURL   string
	)
	flag.StringVar(&command, "command", "up", "up, down, force, version or drop")
	flag.IntVar(&steps, "steps", 0, "migration count (0 = all); target version for force")
	flag.StringVar(&dir, "dir", "migrations", "migrations directory")
	flag.StringVar(&dbURL, "database", "", "database URL (defaults to DATABASE_URL)")
	flag.Parse()

	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal().Msg("Set DATABASE_URL or pass -database")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("Cannot resolve migrations directory")
	}

	m, err := migrate.New("file://"+abs, dbURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot open migration source")
	}
	defer m.Close()

	log.Info().Str("command", command).Str("dir", abs).Int("steps", steps).Msg("Running schema migration")

	switch command {
	case "up":
		err = applyUp(m, steps)
	case "down":
		err = applyDown(m, steps)
	case "force":
		if steps == 0 {
			log.Fatal().Msg("force needs -steps with the target version")
		}
		err = m.Force(steps)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil {
			if verr == migrate.ErrNilVersion {
				log.Info().Msg("Schema has no applied migrations")
				return
			}
			log.Fatal().Err(verr).Msg("Cannot read schema version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Schema version")
		return
	case "drop":
		err = m.Drop()
	default:
		log.Fatal().Str("command", command).Msg("Unknown command")
	}

	if err != nil {
		if err == migrate.ErrNoChange {
			log.Info().Msg("Schema already up to date")
			return
		}
		log.Fatal().Err(err).Msg("Migration failed")
	}

	log.Info().Msg("Migration complete")
}

func applyUp(m *migrate.Migrate, steps int) error {
	if steps > 0 {
		return m.Steps(steps)
	}
	return m.Up()
}

func applyDown(m *migrate.Migrate, steps int) error {
	if steps > 0 {
		return m.Steps(-steps)
	}
	return m.Down()
}
