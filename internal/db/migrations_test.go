package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationsAreIdempotent(t *testing.T) {
	for i, stmt := range migrationStatements {
		upper := strings.ToUpper(stmt)
		idempotent := strings.Contains(upper, "IF NOT EXISTS") || strings.HasPrefix(strings.TrimSpace(upper), "DO $$")
		assert.Truef(t, idempotent, "migration %d is not idempotent: %s", i+1, stmt)
	}
}

func TestMigrationsCreateGoalKey(t *testing.T) {
	joined := strings.Join(migrationStatements, "\n")
	assert.Contains(t, joined, "uq_metas_regiao_periodo ON metas_mensais (region, year, month)")
	assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS user_roles")
}
