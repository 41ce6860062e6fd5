package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Portal is a portal preview server found on the network
type Portal struct {
	// Name is the advertised instance name (e.g., "Meta Architect")
	Name string

	// Host is the mDNS hostname (e.g., "studio.local.")
	Host string

	// IP is the address to connect to, IPv4 when available
	IP string

	// Port is the HTTP port
	Port int

	// Version is the server version from the TXT record
	Version string

	// Path is the preview page path from the TXT record, "/" when absent
	Path string

	// Metadata holds every TXT record
	Metadata map[string]string

	// DiscoveredAt is when the advertisement was received
	DiscoveredAt time.Time
}

// String returns a human-readable summary of the portal
func (p *Portal) String() string {
	return fmt.Sprintf("Portal %q (%s) at %s", p.Name, p.Host, net.JoinHostPort(p.IP, strconv.Itoa(p.Port)))
}

// URL returns the address of the preview page
func (p *Portal) URL() string {
	path := p.Path
	if path == "" {
		path = "/"
	}
	return "http://" + net.JoinHostPort(p.IP, strconv.Itoa(p.Port)) + path
}

// GetMetadata returns a TXT value by key, or an empty string
func (p *Portal) GetMetadata(key string) string {
	if p.Metadata == nil {
		return ""
	}
	return p.Metadata[key]
}
