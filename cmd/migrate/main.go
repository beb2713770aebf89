package main

import (
	"database/sql"
	"errors"
	"flag"

	"luminous-ledger/pkg/config"
	"luminous-ledger/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back all migrations instead of applying them")
	source := flag.String("source", "file://migrations", "migration source URL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		log.Fatal("Failed to create migration driver", zap.Error(err))
	}

	m, err := migrate.NewWithDatabaseInstance(*source, cfg.Database.DBName, driver)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal("Migration failed", zap.Error(err))
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal("Failed to read migration version", zap.Error(err))
	}

	log.Info("Migration complete",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
}
