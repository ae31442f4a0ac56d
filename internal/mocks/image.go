package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockImageService is a mock implementation of the image service
type MockImageService struct {
	mock.Mock
}

// ResolveURL mocks the ResolveURL method
func (m *MockImageService) ResolveURL(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}
