package engine

import "errors"

// ErrUnsupported is returned by Import when no reader accepts the file.
var ErrUnsupported = errors.New("unsupported asset format")

// Post-processing flags understood by the bundled importers.
const (
	FlagTriangulate  uint32 = 0x8
	FlagFlipWinding  uint32 = 0x1000000
	FlagJoinVertices uint32 = 0x2
)

// Importer is one native importer instance.
type Importer interface {
	// Import reads the asset at path. The returned scene is owned by the
	// importer and stays valid until the next Import or Close.
	Import(path string, flags uint32) (*Scene, error)
	// SetPropertyInteger sets an integer property for subsequent imports.
	SetPropertyInteger(name string, value int32)
	// SetPropertyFloat sets a float property for subsequent imports.
	SetPropertyFloat(name string, value float32)
	// SetPropertyString sets a string property for subsequent imports.
	SetPropertyString(name, value string)
	// Close releases the importer and any scene it owns.
	Close() error
}

// Catalog is implemented by importers that publish the property names they
// understand. Unknown names are still accepted and ignored.
type Catalog interface {
	KnownProperties() []string
}

// Factory creates importer instances.
type Factory interface {
	NewImporter() (Importer, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func() (Importer, error)

// NewImporter implements Factory.
func (f FactoryFunc) NewImporter() (Importer, error) { return f() }
