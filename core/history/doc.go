// Package history persists the outcome of every import.
//
// Store implements bridge.Recorder on top of GORM. Each Load on any session
// produces one ImportRecord row in the import_records table, including failed
// loads. The table is optional; the bridge runs without a database.
//
// # Usage
//
//	store := history.NewStore(db)
//	if err := store.Migrate(); err != nil {
//	    return err
//	}
//	reg, _ := bridge.NewRegistry(bridge.Options{Recorder: store, ...})
package history
