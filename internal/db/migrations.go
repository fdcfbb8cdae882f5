package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS equipamentos (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		municipality VARCHAR(128) NOT NULL,
		type VARCHAR(64) NOT NULL,
		has_patrol BOOLEAN NOT NULL DEFAULT FALSE,
		address TEXT NOT NULL DEFAULT '',
		phone VARCHAR(64) NOT NULL DEFAULT '',
		responsible VARCHAR(255) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);`,
	`CREATE INDEX IF NOT EXISTS idx_equipamentos_municipality ON equipamentos (municipality);`,
	`CREATE INDEX IF NOT EXISTS idx_equipamentos_created_at ON equipamentos (created_at DESC);`,
	`CREATE TABLE IF NOT EXISTS viaturas (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		municipality VARCHAR(128) NOT NULL,
		patrol_type VARCHAR(128) NOT NULL,
		linked_to_equipment BOOLEAN NOT NULL DEFAULT FALSE,
		equipment_id UUID REFERENCES equipamentos(id) ON DELETE SET NULL,
		organization VARCHAR(64) NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 0),
		implanted_at DATE,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);`,
	`CREATE INDEX IF NOT EXISTS idx_viaturas_municipality ON viaturas (municipality);`,
	`CREATE INDEX IF NOT EXISTS idx_viaturas_equipment_id ON viaturas (equipment_id) WHERE equipment_id IS NOT NULL;`,
	`CREATE TABLE IF NOT EXISTS solicitacoes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		municipality VARCHAR(128) NOT NULL,
		equipment_type VARCHAR(64) NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'Recebida',
		received_patrol BOOLEAN NOT NULL DEFAULT FALSE,
		guard_structured BOOLEAN NOT NULL DEFAULT FALSE,
		kit_delivered BOOLEAN NOT NULL DEFAULT FALSE,
		training_done BOOLEAN NOT NULL DEFAULT FALSE,
		process_number VARCHAR(64),
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'solicitacoes' AND column_name = 'promoted_equipment_id') THEN
			ALTER TABLE solicitacoes ADD COLUMN promoted_equipment_id UUID REFERENCES equipamentos(id) ON DELETE SET NULL;
		END IF;
	END
	$$;`,
	`CREATE INDEX IF NOT EXISTS idx_solicitacoes_municipality ON solicitacoes (municipality);`,
	`CREATE INDEX IF NOT EXISTS idx_solicitacoes_status ON solicitacoes (status);`,
	`CREATE TABLE IF NOT EXISTS metas_mensais (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		region VARCHAR(64) NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
		equipment INTEGER NOT NULL DEFAULT 0 CHECK (equipment >= 0),
		vehicles INTEGER NOT NULL DEFAULT 0 CHECK (vehicles >= 0),
		coverage NUMERIC(5,2) NOT NULL DEFAULT 0 CHECK (coverage BETWEEN 0 AND 100),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_metas_regiao_periodo ON metas_mensais (region, year, month);`,
	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id UUID PRIMARY KEY,
		role VARCHAR(16) NOT NULL CHECK (role IN ('admin', 'viewer')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
