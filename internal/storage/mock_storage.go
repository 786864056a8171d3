package storage

import (
	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock with the same method set as Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Exists(slug string) (bool, error) {
	args := m.Called(slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) Read(slug string) ([]byte, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) Write(slug string, data []byte) error {
	args := m.Called(slug, data)
	return args.Error(0)
}

func (m *MockStorage) Remove(slug string) error {
	args := m.Called(slug)
	return args.Error(0)
}

func (m *MockStorage) List() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
