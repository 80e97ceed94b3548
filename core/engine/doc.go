// Package engine declares the contract of the native asset-import engine.
//
// The bridge treats the engine as an opaque collaborator: an Importer accepts
// typed properties and turns a file path plus post-processing flags into a
// native Scene or a failure. The Scene returned by Import stays owned by the
// importer; the bridge copies it before publishing it to the host.
//
// Package obj contains a small Wavefront OBJ importer used by the CLI and by
// integration tests. Package mocks contains a testify mock of Importer.
package engine
