package docker

import (
	"context"

	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/mock"
)

// MockContainerInspector is a mock implementation of ContainerInspector for testing.
type MockContainerInspector struct {
	mock.Mock
}

// NewMockContainerInspector creates a new MockContainerInspector instance.
func NewMockContainerInspector() *MockContainerInspector {
	return &MockContainerInspector{}
}

// ContainerInspect mocks inspecting a container.
func (m *MockContainerInspector) ContainerInspect(
	ctx context.Context,
	name string,
) (container.InspectResponse, error) {
	args := m.Called(ctx, name)

	result, ok := args.Get(0).(container.InspectResponse)
	if !ok {
		return container.InspectResponse{}, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}
