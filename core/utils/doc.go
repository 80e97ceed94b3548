// Package utils provides value conversion helpers shared by the HTTP and CLI
// surfaces, mainly for turning loosely typed input into typed property values.
package utils
