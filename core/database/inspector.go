package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Column describes one live table column. Names and types are lowercased so
// both dialects compare the same way.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
}

type sqliteColumn struct {
	Cid       int
	Name      string
	Type      string
	Notnull   int
	DfltValue *string
	Pk        int
}

type mysqlColumn struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string
	Extra   string
}

// TableColumns reads the columns of table from the live database. A table
// that does not exist yields no columns on SQLite and an error on MySQL.
func TableColumns(db *gorm.DB, table string) ([]Column, error) {
	if db.Dialector.Name() == "sqlite" {
		return sqliteColumns(db, table)
	}
	return mysqlColumns(db, table)
}

func sqliteColumns(db *gorm.DB, table string) ([]Column, error) {
	var rows []sqliteColumn
	query := fmt.Sprintf("PRAGMA table_info(%s)", quote(table, '\''))
	if err := db.Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	out := make([]Column, 0, len(rows))
	for _, r := range rows {
		out = append(out, Column{
			Name:       strings.ToLower(r.Name),
			Type:       strings.ToLower(r.Type),
			Nullable:   r.Notnull == 0 && r.Pk == 0,
			PrimaryKey: r.Pk > 0,
		})
	}
	return out, nil
}

func mysqlColumns(db *gorm.DB, table string) ([]Column, error) {
	var rows []mysqlColumn
	query := "SHOW COLUMNS FROM " + quote(table, '`')
	if err := db.Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	out := make([]Column, 0, len(rows))
	for _, r := range rows {
		out = append(out, Column{
			Name:       strings.ToLower(r.Field),
			Type:       strings.ToLower(r.Type),
			Nullable:   strings.EqualFold(r.Null, "YES"),
			PrimaryKey: r.Key == "PRI",
		})
	}
	return out, nil
}

// MissingColumns returns the names in want that table lacks, in want order.
func MissingColumns(db *gorm.DB, table string, want []string) ([]string, error) {
	cols, err := TableColumns(db, table)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c.Name] = true
	}
	missing := []string{}
	for _, name := range want {
		if !present[strings.ToLower(name)] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// quote wraps an identifier in q, doubling any embedded q.
func quote(ident string, q rune) string {
	s := string(q)
	return s + strings.ReplaceAll(ident, s, s+s) + s
}
