// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL or SQLite connections from the
// application's configuration. The bridge uses the connection to persist its
// import history; it is optional and the bridge runs without it.
//
// # Schema Inspection
//
// TableColumns lists the columns of a live table for both dialects and
// MissingColumns compares them with a wanted set. The history integrity check
// uses MissingColumns to verify the import_records table.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "import_records", history.ExpectedColumns)
package database
