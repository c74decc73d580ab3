package config

// Ports the ingress firewall opens for the protocol and for SSH.
const (
	// ProtocolPortRange covers the ports the multi-party protocol listens on.
	ProtocolPortRange = "8000-8999"

	// SSHPort is opened for OS-login based debugging access.
	SSHPort = "22"
)
