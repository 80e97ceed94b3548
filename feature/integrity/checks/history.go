package checks

import (
	"fmt"

	"asset-bridge/core/database"
	"asset-bridge/core/history"

	"gorm.io/gorm"
)

// HistoryReport is the result of the import history schema check.
type HistoryReport struct {
	Table          string   `json:"table"`
	Exists         bool     `json:"exists"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	Errors         []string `json:"errors"`
}

// CheckHistorySchema verifies the import history table has every column the
// store writes.
func CheckHistorySchema(db *gorm.DB) (*HistoryReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &HistoryReport{
		Table:          history.TableName,
		MissingColumns: []string{},
		Errors:         []string{},
	}

	if !db.Migrator().HasTable(history.TableName) {
		report.MissingColumns = append(report.MissingColumns, history.ExpectedColumns...)
		report.Errors = append(report.Errors, fmt.Sprintf("table %s does not exist", history.TableName))
		return report, nil
	}
	report.Exists = true

	missing, err := database.MissingColumns(db, history.TableName, history.ExpectedColumns)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", history.TableName, err))
		return report, nil
	}
	report.MissingColumns = missing
	report.Matched = len(report.MissingColumns) == 0
	return report, nil
}
