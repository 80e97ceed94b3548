package mocks

import (
	"asset-bridge/core/engine"

	"github.com/stretchr/testify/mock"
)

// Importer is a mock implementation of engine.Importer
type Importer struct {
	mock.Mock
}

func (m *Importer) Import(path string, flags uint32) (*engine.Scene, error) {
	args := m.Called(path, flags)
	if s, ok := args.Get(0).(*engine.Scene); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Importer) SetPropertyInteger(name string, value int32) {
	m.Called(name, value)
}

func (m *Importer) SetPropertyFloat(name string, value float32) {
	m.Called(name, value)
}

func (m *Importer) SetPropertyString(name, value string) {
	m.Called(name, value)
}

func (m *Importer) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Factory hands out the queued importers in order.
type Factory struct {
	mock.Mock
}

func (f *Factory) NewImporter() (engine.Importer, error) {
	args := f.Called()
	if imp, ok := args.Get(0).(engine.Importer); ok {
		return imp, args.Error(1)
	}
	return nil, args.Error(1)
}
