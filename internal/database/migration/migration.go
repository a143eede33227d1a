package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// steps bootstrap the PostgreSQL mirror of the compliance cube. Column names follow the
// warehouse, lower-cased.
var steps = []migrationStep{
	{
		Name: "create_table_cubo_documentos",
		SQL: `CREATE TABLE IF NOT EXISTS cubo_documentos (
  projeto                     TEXT,
  competencia                 TEXT,
  competencia_data            DATE,
  documento                   TEXT,
  prestador                   TEXT,
  cnpj_prestador              TEXT,
  contrato                    TEXT,
  status_geral_regra          TEXT,
  critico                     TEXT,
  relevancia                  NUMERIC,
  documento_aprov_obs2        TEXT,
  documento_aprov_regulariza2 TEXT,
  chave_composta              TEXT,
  email_envio                 TEXT
);`,
	},
	{
		Name: "create_index_cubo_competencia",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cubo_competencia ON cubo_documentos (competencia);`,
	},
	{
		Name: "create_index_cubo_competencia_data",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cubo_competencia_data ON cubo_documentos (competencia_data);`,
	},
	{
		Name: "create_index_cubo_contrato",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cubo_contrato ON cubo_documentos (projeto, prestador, contrato);`,
	},
	{
		Name: "create_index_cubo_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cubo_status ON cubo_documentos (status_geral_regra);`,
	},
}

// EnsureMigrated creates the cube table and its indexes unless the table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('public.cubo_documentos') IS NOT NULL").Scan(&exists); err != nil {
		log.Error("db migration failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db migration skipped, schema already exists", zap.Duration("duration", time.Since(start)))
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db migration failed",
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Duration("step_duration", time.Since(stepStart)),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info("db migration step applied",
			zap.String("migration_step", step.Name),
			zap.Duration("step_duration", time.Since(stepStart)),
		)
	}

	log.Info("db migration finished", zap.Int("steps", len(steps)), zap.Duration("duration", time.Since(start)))
	return nil
}
