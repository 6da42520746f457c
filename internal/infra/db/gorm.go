package db

import (
	"fmt"
	"os"

	"medstore/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection and returns a *gorm.DB.
func Connect(cfg config.Config) (*gorm.DB, error) {
	// TranslateError maps driver errors onto gorm.ErrDuplicatedKey etc.
	gormCfg := &gorm.Config{TranslateError: true}

	// DATABASE_URL wins when set (hosted environments)
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser,
		cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
	)

	return gorm.Open(postgres.Open(dsn), gormCfg)
}
