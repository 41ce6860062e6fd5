package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/agolabs/architect/internal/logging"
	"go.uber.org/zap"
)

const (
	// ServiceType is the mDNS service type portal servers advertise
	ServiceType = "_architect._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."

	// DefaultScanTimeout is the default browse duration
	DefaultScanTimeout = 3 * time.Second

	// DefaultPort is used when an advertisement carries no port
	DefaultPort = 8787

	// TXT record keys
	TxtVersion = "version"
	TxtPath    = "path"
)

// Scanner browses for portal servers
type Scanner struct {
	// Timeout is the maximum time to browse
	Timeout time.Duration
}

// NewScanner creates a scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses until the timeout expires and returns every portal seen,
// sorted by name.
func (s *Scanner) Scan(ctx context.Context) ([]*Portal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	done := make(chan struct{})
	seen := make(map[string]*Portal)

	go func() {
		defer close(done)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				if p := parseServiceEntry(entry); p != nil {
					seen[p.Name] = p
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	<-done

	portals := make([]*Portal, 0, len(seen))
	for _, p := range seen {
		portals = append(portals, p)
	}
	sort.Slice(portals, func(i, j int) bool { return portals[i].Name < portals[j].Name })

	logging.Debug("Portal scan finished",
		zap.Duration("timeout", s.Timeout),
		zap.Int("found", len(portals)),
	)
	return portals, nil
}

// WaitForPortal browses until a portal with the given instance name appears
func (s *Scanner) WaitForPortal(ctx context.Context, name string) (*Portal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Portal, 1)

	go func() {
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				if p := parseServiceEntry(entry); p != nil && p.Name == name {
					found <- p
					cancel()
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case p := <-found:
		return p, nil
	case <-ctx.Done():
		select {
		case p := <-found:
			return p, nil
		default:
		}
		return nil, fmt.Errorf("portal %q not found within %s", name, s.Timeout)
	}
}

// parseServiceEntry converts a service entry to a Portal.
// Returns nil when the entry has no instance name or no address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Portal {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		k, v, _ := strings.Cut(txt, "=")
		metadata[k] = v
	}

	return &Portal{
		Name:         entry.Instance,
		Host:         entry.HostName,
		IP:           ip,
		Port:         port,
		Version:      metadata[TxtVersion],
		Path:         metadata[TxtPath],
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// TXTRecords builds the TXT records a portal server advertises
func TXTRecords(version, path string) []string {
	return []string{TxtVersion + "=" + version, TxtPath + "=" + path}
}

// Discover browses for timeout and returns the portals found
func Discover(ctx context.Context, timeout time.Duration) ([]*Portal, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.Scan(ctx)
}
