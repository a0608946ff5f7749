package infra

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"orcaobra/migrations"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and applies the
// embedded SQL migrations. GORM AutoMigrate is not used: the schema (decimal
// precision, check constraints, partial indexes) lives in migrations/.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

// RunMigrations applies every *.up.sql file of the embedded migrations that is
// not yet recorded in schema_migrations, in file name order. Each file runs in
// its own transaction together with its bookkeeping row.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`).Error; err != nil {
		return err
	}

	nomes, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		return err
	}
	sort.Strings(nomes)

	var aplicadas []string
	if err := db.Raw("SELECT version FROM schema_migrations").Scan(&aplicadas).Error; err != nil {
		return err
	}
	feitas := make(map[string]bool, len(aplicadas))
	for _, v := range aplicadas {
		feitas[v] = true
	}

	for _, nome := range nomes {
		versao := strings.TrimSuffix(nome, ".up.sql")
		if feitas[versao] {
			continue
		}
		sql, err := migrations.FS.ReadFile(nome)
		if err != nil {
			return err
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(sql)).Error; err != nil {
				return err
			}
			return tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", versao).Error
		})
		if err != nil {
			return fmt.Errorf("migration %q: %w", nome, err)
		}
		log.Info().Str("version", versao).Msg("migration applied")
	}
	return nil
}
