package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/orgball2608/affiliate-post-bot/pkg/config"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var FS embed.FS

// Dir is the migrations directory inside FS.
const Dir = "sql"

// Open connects with lib/pq and prepares goose to read the embedded files.
func Open(cfg *config.Config) (*sql.DB, error) {
	goose.SetBaseFS(FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("failed to set dialect: %w", err)
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Up applies every pending migration.
func Up(ctx context.Context, cfg *config.Config) error {
	db, err := Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return goose.UpContext(ctx, db, Dir)
}
