package docker

import (
	"fmt"

	"github.com/docker/docker/client"
)

// NewClient creates a Docker client from the environment (DOCKER_HOST, DOCKER_CERT_PATH, ...)
// with API version negotiation.
func NewClient() (*client.Client, error) {
	dockerClient, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return dockerClient, nil
}
