package gcp

import (
	"context"
	"fmt"

	"github.com/genomix-mpc/genomix/internal/config"

	"google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

// RealClient implements ComputeManager using the Compute Engine API.
type RealClient struct {
	service  *compute.Service
	cfg      *config.Config
	timeouts *config.Timeouts
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithComputeService sets a custom compute service (useful for testing).
func WithComputeService(svc *compute.Service) ClientOption {
	return func(c *RealClient) {
		c.service = svc
	}
}

// NewRealClient creates a new RealClient with optional configuration.
// Credentials come from the configured credentials file when set, and from
// application default credentials otherwise.
func NewRealClient(ctx context.Context, cfg *config.Config, opts ...ClientOption) (*RealClient, error) {
	c := &RealClient{
		cfg:      cfg,
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.service == nil {
		var clientOpts []option.ClientOption
		if cfg.CredentialsFile != "" {
			clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		svc, err := compute.NewService(ctx, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create compute service: %w", err)
		}
		c.service = svc
	}
	return c, nil
}

// ComputeService returns the underlying compute service for advanced
// operations not exposed through the ComputeManager interface.
func (c *RealClient) ComputeService() *compute.Service {
	return c.service
}

// networkURL returns the partial URL of the study network in a project.
func networkURL(project, network string) string {
	return fmt.Sprintf("projects/%s/global/networks/%s", project, network)
}

// subnetURL returns the partial URL of a subnet in a project's region.
func subnetURL(project, region, name string) string {
	return fmt.Sprintf("projects/%s/regions/%s/subnetworks/%s", project, region, name)
}
