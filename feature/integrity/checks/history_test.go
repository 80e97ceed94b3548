package checks

import (
	"testing"

	"asset-bridge/core/database"
	"asset-bridge/core/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestCheckHistorySchema_NilDB(t *testing.T) {
	report, err := CheckHistorySchema(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckHistorySchema_MissingTable(t *testing.T) {
	report, err := CheckHistorySchema(setupSQLite(t))
	require.NoError(t, err)
	assert.False(t, report.Exists)
	assert.False(t, report.Matched)
	assert.ElementsMatch(t, history.ExpectedColumns, report.MissingColumns)
	assert.Len(t, report.Errors, 1)
}

func TestCheckHistorySchema_Migrated(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, history.NewStore(db).Migrate())

	report, err := CheckHistorySchema(db)
	require.NoError(t, err)
	assert.True(t, report.Exists)
	assert.True(t, report.Matched)
	assert.Empty(t, report.MissingColumns)
}

func TestCheckHistorySchema_PartialTable(t *testing.T) {
	db := setupSQLite(t)
	require.NoError(t, db.Exec("CREATE TABLE import_records (id integer primary key, handle text, path text)").Error)

	report, err := CheckHistorySchema(db)
	require.NoError(t, err)
	assert.True(t, report.Exists)
	assert.False(t, report.Matched)
	assert.Contains(t, report.MissingColumns, "duration_ms")
	assert.NotContains(t, report.MissingColumns, "path")
}
