package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE import_items (id INTEGER PRIMARY KEY, Path TEXT NOT NULL, note TEXT)").Error)
	return db
}

func TestTableColumns_SQLite(t *testing.T) {
	db := setupSQLite(t)

	cols, err := TableColumns(db, "import_items")
	require.NoError(t, err)
	require.Len(t, cols, 3)

	assert.Equal(t, Column{Name: "id", Type: "integer", PrimaryKey: true}, cols[0])
	assert.Equal(t, Column{Name: "path", Type: "text"}, cols[1])
	assert.Equal(t, Column{Name: "note", Type: "text", Nullable: true}, cols[2])

	cols, err = TableColumns(db, "missing_table")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "BIGINT UNSIGNED", "NO", "PRI", nil, "auto_increment").
		AddRow("Path", "VARCHAR(1024)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `import_records`").WillReturnRows(rows)

	cols, err := TableColumns(db, "import_records")
	require.NoError(t, err)
	assert.Equal(t, []Column{
		{Name: "id", Type: "bigint unsigned", PrimaryKey: true},
		{Name: "path", Type: "varchar(1024)", Nullable: true},
	}, cols)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMissingColumns(t *testing.T) {
	db := setupSQLite(t)

	missing, err := MissingColumns(db, "import_items", []string{"id", "path", "caller", "flags"})
	require.NoError(t, err)
	assert.Equal(t, []string{"caller", "flags"}, missing)

	missing, err = MissingColumns(db, "import_items", []string{"ID", "note"})
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "`import_records`", quote("import_records", '`'))
	assert.Equal(t, "'it''s'", quote("it's", '\''))
}
