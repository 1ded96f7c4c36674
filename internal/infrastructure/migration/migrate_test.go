package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/erp/projectlink/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations_ArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations.FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for i, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(migrations.FS, down)
		assert.NoError(t, err, "missing rollback for %s", up)
		assert.Equal(t, i+1, nextVersion([]string{up})-1, "versions must be contiguous: %s", up)
	}
}

func TestEmbeddedMigrations_SeedInvoiceActions(t *testing.T) {
	raw, err := fs.ReadFile(migrations.FS, "000005_create_window_actions.up.sql")
	require.NoError(t, err)
	sql := string(raw)
	assert.Contains(t, sql, "account.action_move_in_invoice_type")
	assert.Contains(t, sql, "account.action_move_out_invoice_type")
	// Customer invoice counts include credit notes, so the stored action must too
	assert.Contains(t, sql, "(''out_invoice'', ''out_refund'')")
}
