package infra

import (
	"fmt"

	"github.com/HarryYanarico/my-proyect/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection backed by pgx and brings the schema up
// to date.
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

// RunMigrations creates or updates every ledger table, then applies the
// PostgreSQL-only indexes and checks that AutoMigrate cannot express.
// Other dialects (SQLite in repository tests) only get the tables.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Empleado{},
		&model.Cliente{},
		&model.Lote{},
		&model.Venta{},
		&model.DocumentoVenta{},
		&model.VentaContado{},
		&model.VentaCredito{},
		&model.PlanPago{},
		&model.Cuota{},
		&model.PagoCuota{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL; re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"cuotas: monto pagado dentro de rango", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_cuotas_monto_pagado') THEN
    ALTER TABLE cuotas ADD CONSTRAINT chk_cuotas_monto_pagado
      CHECK (monto_pagado >= 0 AND monto_pagado <= monto_cuota);
  END IF;
END $$`},
		{"cuotas: estado válido", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_cuotas_estado') THEN
    ALTER TABLE cuotas ADD CONSTRAINT chk_cuotas_estado
      CHECK (estado IN ('pendiente', 'parcial', 'pagado'));
  END IF;
END $$`},
		{"pagos_cuotas: monto positivo", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_pagos_cuotas_monto') THEN
    ALTER TABLE pagos_cuotas ADD CONSTRAINT chk_pagos_cuotas_monto CHECK (monto > 0);
  END IF;
END $$`},
		{"índice parcial de cuotas vencidas",
			`CREATE INDEX IF NOT EXISTS idx_cuotas_vencidas
			   ON cuotas (fecha_venc) WHERE estado = 'pendiente'`},
		{"índice parcial de documentos pendientes",
			`CREATE INDEX IF NOT EXISTS idx_documentos_venta_pendientes
			   ON documentos_venta (created_at) WHERE estado = 'pendiente'`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
