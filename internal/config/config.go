// Package config holds the orchestrator configuration: the coordinating
// server's cloud project, the region/zone everything is provisioned in, and
// the env-tunable timeout families for cloud operations.
package config

import "fmt"

// Config is the orchestrator configuration, loaded from a YAML file.
type Config struct {
	// ServerProject is the coordinating party's cloud project. It always
	// occupies role 0 of every study.
	ServerProject string `yaml:"server_project"`

	// Region and Zone locate every subnet and instance this system manages.
	Region string `yaml:"region"`
	Zone   string `yaml:"zone"`

	// BootImageProject and BootImageFamily select the instance boot image.
	BootImageProject string `yaml:"boot_image_project"`
	BootImageFamily  string `yaml:"boot_image_family"`

	// MachineSeries is the machine type series; the CPU count from the
	// participant's personal parameters completes the machine type name.
	MachineSeries string `yaml:"machine_series"`

	// CredentialsFile optionally points at a service-account key file.
	// Empty means application default credentials.
	CredentialsFile string `yaml:"credentials_file"`
}

// Validate checks that required fields are set.
func (c *Config) Validate() error {
	if c.ServerProject == "" {
		return fmt.Errorf("server_project is required")
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.Zone == "" {
		return fmt.Errorf("zone is required")
	}
	return nil
}
