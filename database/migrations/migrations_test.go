package migrations_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/shashiranjanraj/storefront/database/migrations"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

func TestMigrations_UpStatusDown(t *testing.T) {
	db, err := database.Open("sqlite", "file:migrations_up_down?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	var out bytes.Buffer
	runner := migration.New(db).WithOutput(&out)

	require.NoError(t, runner.Run())
	for _, table := range []string{"users", "products", "shopping_cart", "order_ledger"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	out.Reset()
	require.NoError(t, runner.Run())
	assert.Contains(t, out.String(), "Nothing to migrate.")

	out.Reset()
	require.NoError(t, runner.Status())
	assert.Contains(t, out.String(), "create_order_ledger_table")
	assert.NotContains(t, out.String(), "Pending")

	require.NoError(t, runner.Rollback())
	for _, table := range []string{"users", "products", "shopping_cart", "order_ledger"} {
		assert.False(t, db.Migrator().HasTable(table), table)
	}
}
