// Package config provides configuration management for the bridge.
//
// Values come from environment variables and an optional .env file; defaults
// are declared on the section structs with `default:"..."` tags.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, body limit
//   - Bridge: session and scene limits
//   - Storage: S3/MinIO credentials, bucket and local cache directory
//   - Log: logging level and format
//   - Database: optional import history database
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
