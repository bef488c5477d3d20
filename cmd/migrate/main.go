package main

import (
	"errors"
	"os"
	"strconv"

	"healthcare-booking/config"
	"healthcare-booking/internal/infrastructure/database"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

// Usage: migrate [up|down|force <version>|version]
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.TimeZone, logger.Warn)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	m, err := database.NewMigrator(db)
	if err != nil {
		logrus.Fatalf("Failed to create migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	command := "up"
	if len(os.Args) >= 2 {
		command = os.Args[1]
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logrus.Fatalf("migrate up: %v", err)
		}
	case "down":
		if err := m.Steps(-1); err != nil {
			logrus.Fatalf("migrate down: %v", err)
		}
	case "force":
		if len(os.Args) < 3 {
			logrus.Fatal("force requires a version")
		}
		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			logrus.Fatalf("invalid version: %v", err)
		}
		if err := m.Force(version); err != nil {
			logrus.Fatalf("force version: %v", err)
		}
	case "version":
	default:
		logrus.Fatalf("unknown command %q, use up, down, force or version", command)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logrus.Fatalf("migrate version: %v", err)
	}
	logrus.Infof("Database schema at version %d (dirty=%t)", version, dirty)
}
