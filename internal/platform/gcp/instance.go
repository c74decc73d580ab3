package gcp

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/compute/v1"
)

// Instance access scopes. Storage for study data, logging for diagnostics,
// pubsub for progress reporting from the protocol run.
var instanceScopes = []string{
	"https://www.googleapis.com/auth/devstorage.read_write",
	"https://www.googleapis.com/auth/logging.write",
	"https://www.googleapis.com/auth/pubsub",
}

// CreateInstance replaces any existing instance of the same name and builds
// a fresh one. Recreating from scratch keeps restarted studies from
// inheriting stale disks or metadata.
func (c *RealClient) CreateInstance(ctx context.Context, project string, opts InstanceCreateOpts) error {
	if err := c.DeleteInstance(ctx, project, opts.Name); err != nil {
		return err
	}

	image, err := c.service.Images.GetFromFamily(c.cfg.BootImageProject, c.cfg.BootImageFamily).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to resolve boot image %s/%s: %w",
			c.cfg.BootImageProject, c.cfg.BootImageFamily, err)
	}

	metadata := make([]*compute.MetadataItems, 0, len(opts.Metadata))
	for key, value := range opts.Metadata {
		v := value
		metadata = append(metadata, &compute.MetadataItems{Key: key, Value: &v})
	}

	instance := &compute.Instance{
		Name: opts.Name,
		MachineType: fmt.Sprintf("zones/%s/machineTypes/%s-%d",
			c.cfg.Zone, c.cfg.MachineSeries, opts.NumCPUs),
		Disks: []*compute.AttachedDisk{
			{
				Boot:       true,
				AutoDelete: true,
				InitializeParams: &compute.AttachedDiskInitializeParams{
					SourceImage: image.SelfLink,
					DiskSizeGb:  opts.BootDiskSizeGB,
				},
			},
		},
		NetworkInterfaces: []*compute.NetworkInterface{
			{
				Subnetwork: subnetURL(project, c.cfg.Region, opts.Subnet),
				NetworkIP:  opts.NetworkIP,
				AccessConfigs: []*compute.AccessConfig{
					{
						Type: "ONE_TO_ONE_NAT",
						Name: "External NAT",
					},
				},
			},
		},
		ServiceAccounts: []*compute.ServiceAccount{
			{
				Email:  "default",
				Scopes: instanceScopes,
			},
		},
		Metadata: &compute.Metadata{Items: metadata},
	}

	op, err := c.service.Instances.Insert(project, c.cfg.Zone, instance).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to create instance %s: %w", opts.Name, err)
	}
	return c.waitZone(ctx, project, op)
}

// DeleteInstance removes an instance. Absent instances are ignored.
func (c *RealClient) DeleteInstance(ctx context.Context, project, name string) error {
	op, err := c.service.Instances.Delete(project, c.cfg.Zone, name).Context(ctx).Do()
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete instance %s: %w", name, err)
	}
	return c.waitZone(ctx, project, op)
}

// StopInstance powers an instance off without discarding its disk.
func (c *RealClient) StopInstance(ctx context.Context, project, name string) error {
	op, err := c.service.Instances.Stop(project, c.cfg.Zone, name).Context(ctx).Do()
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to stop instance %s: %w", name, err)
	}
	return c.waitZone(ctx, project, op)
}

// ListInstances returns the instances in the zone, optionally restricted to
// those attached to the named subnet.
func (c *RealClient) ListInstances(ctx context.Context, project, subnet string) ([]*compute.Instance, error) {
	var instances []*compute.Instance
	subnetSuffix := "/" + subnet

	err := c.service.Instances.List(project, c.cfg.Zone).Pages(ctx,
		func(page *compute.InstanceList) error {
			for _, instance := range page.Items {
				if subnet == "" || instanceOnSubnet(instance, subnetSuffix) {
					instances = append(instances, instance)
				}
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list instances in %s: %w", project, err)
	}
	return instances, nil
}

// InstanceExternalIP returns the NAT address of the instance's first
// network interface.
func (c *RealClient) InstanceExternalIP(ctx context.Context, project, name string) (string, error) {
	instance, err := c.service.Instances.Get(project, c.cfg.Zone, name).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get instance %s: %w", name, err)
	}
	for _, iface := range instance.NetworkInterfaces {
		for _, access := range iface.AccessConfigs {
			if access.NatIP != "" {
				return access.NatIP, nil
			}
		}
	}
	return "", fmt.Errorf("instance %s has no external address", name)
}

// InstanceServiceAccount returns the email of the instance's service
// account.
func (c *RealClient) InstanceServiceAccount(ctx context.Context, project, name string) (string, error) {
	instance, err := c.service.Instances.Get(project, c.cfg.Zone, name).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get instance %s: %w", name, err)
	}
	if len(instance.ServiceAccounts) == 0 {
		return "", fmt.Errorf("instance %s has no service account", name)
	}
	return instance.ServiceAccounts[0].Email, nil
}

func instanceOnSubnet(instance *compute.Instance, subnetSuffix string) bool {
	for _, iface := range instance.NetworkInterfaces {
		if strings.HasSuffix(iface.Subnetwork, subnetSuffix) {
			return true
		}
	}
	return false
}
