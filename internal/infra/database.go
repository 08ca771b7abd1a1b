package infra

import (
	"fmt"

	"github.com/nplaytv001-byte/vendas-ovos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// to create / update all tables, then applies the idempotent SQL patches
// AutoMigrate cannot express (CHECK constraints, FK delete behavior).
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
		return nil, err
	}
	return db, nil
}

// RunMigrations creates the schema. Also used by the integration test suite
// against a disposable container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Cliente{},
		&model.ItemEstoque{},
		&model.Venda{},
		&model.VendaPagamento{},
		&model.MovimentoEstoque{},
		&model.Despesa{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate cannot fully
// handle. Each statement uses IF NOT EXISTS / existence guards so re-running
// on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Storage-level floor under the on-hand counter. The service layer
		// only debits through a constrained UPDATE, but the constraint makes
		// oversell impossible even for out-of-band writes.
		{"estoque qtd >= 0 check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_estoque_qtd_nao_negativo') THEN
    ALTER TABLE estoque ADD CONSTRAINT chk_estoque_qtd_nao_negativo CHECK (qtd >= 0);
  END IF;
END $$`},
		// Customers with sale history cannot be deleted (restrict policy).
		{"vendas → clientes FK restrict", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_vendas_cliente') THEN
    ALTER TABLE vendas ADD CONSTRAINT fk_vendas_cliente
      FOREIGN KEY (cliente_id) REFERENCES clientes(id) ON DELETE RESTRICT;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
