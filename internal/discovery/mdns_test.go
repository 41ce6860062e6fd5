package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/grandcat/zeroconf"
)

func newEntry(instance, host string, port int, v4, v6 []net.IP, txt ...string) *zeroconf.ServiceEntry {
	e := zeroconf.NewServiceEntry(instance, ServiceType, ServiceDomain)
	e.HostName = host
	e.Port = port
	e.AddrIPv4 = v4
	e.AddrIPv6 = v6
	e.Text = txt
	return e
}

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name        string
		entry       *zeroconf.ServiceEntry
		wantNil     bool
		wantIP      string
		wantPort    int
		wantVersion string
		wantURL     string
	}{
		{
			name:        "IPv4 with TXT records",
			entry:       newEntry("Meta Architect", "studio.local.", 8787, []net.IP{net.ParseIP("192.168.4.16")}, nil, "version=1.2.0", "path=/"),
			wantIP:      "192.168.4.16",
			wantPort:    8787,
			wantVersion: "1.2.0",
			wantURL:     "http://192.168.4.16:8787/",
		},
		{
			name:     "no port falls back to default",
			entry:    newEntry("Meta Architect", "studio.local.", 0, []net.IP{net.ParseIP("10.0.0.5")}, nil),
			wantIP:   "10.0.0.5",
			wantPort: DefaultPort,
			wantURL:  "http://10.0.0.5:8787/",
		},
		{
			name:     "IPv6 only",
			entry:    newEntry("Lab", "lab.local.", 9000, nil, []net.IP{net.ParseIP("fe80::1")}),
			wantIP:   "fe80::1",
			wantPort: 9000,
			wantURL:  "http://[fe80::1]:9000/",
		},
		{
			name:     "prefers IPv4",
			entry:    newEntry("Lab", "lab.local.", 9000, []net.IP{net.ParseIP("192.168.1.50")}, []net.IP{net.ParseIP("fe80::2")}, "path=/preview"),
			wantIP:   "192.168.1.50",
			wantPort: 9000,
			wantURL:  "http://192.168.1.50:9000/preview",
		},
		{
			name:    "no address",
			entry:   newEntry("Lab", "lab.local.", 9000, nil, nil),
			wantNil: true,
		},
		{
			name:    "no instance name",
			entry:   newEntry("", "lab.local.", 9000, []net.IP{net.ParseIP("192.168.1.1")}, nil),
			wantNil: true,
		},
		{
			name:    "nil entry",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if p != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", p)
				}
				return
			}
			if p == nil {
				t.Fatal("parseServiceEntry() = nil, want portal")
			}

			if p.Name != tt.entry.Instance {
				t.Errorf("Name = %q, want %q", p.Name, tt.entry.Instance)
			}
			if p.Host != tt.entry.HostName {
				t.Errorf("Host = %q, want %q", p.Host, tt.entry.HostName)
			}
			if p.IP != tt.wantIP {
				t.Errorf("IP = %q, want %q", p.IP, tt.wantIP)
			}
			if p.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", p.Port, tt.wantPort)
			}
			if p.Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", p.Version, tt.wantVersion)
			}
			if got := p.URL(); got != tt.wantURL {
				t.Errorf("URL() = %q, want %q", got, tt.wantURL)
			}
			if time.Since(p.DiscoveredAt) > time.Second {
				t.Errorf("DiscoveredAt is not recent: %v", p.DiscoveredAt)
			}
		})
	}
}

func TestParseServiceEntry_Metadata(t *testing.T) {
	entry := newEntry("Meta Architect", "studio.local.", 8787, []net.IP{net.ParseIP("192.168.4.16")}, nil,
		"version=1.2.0", "path=/", "flag", "note=a=b")

	p := parseServiceEntry(entry)
	if p == nil {
		t.Fatal("parseServiceEntry() = nil, want portal")
	}

	want := map[string]string{
		"version": "1.2.0",
		"path":    "/",
		"flag":    "",
		"note":    "a=b",
	}
	if diff := cmp.Diff(want, p.Metadata); diff != "" {
		t.Errorf("Metadata mismatch (-want +got):\n%s", diff)
	}
	if got := p.GetMetadata("note"); got != "a=b" {
		t.Errorf("GetMetadata(note) = %q", got)
	}
	if got := (&Portal{}).GetMetadata("note"); got != "" {
		t.Errorf("GetMetadata on empty portal = %q", got)
	}
}

func TestTXTRecordsRoundTrip(t *testing.T) {
	entry := newEntry("Meta Architect", "studio.local.", 8787, []net.IP{net.ParseIP("127.0.0.1")}, nil,
		TXTRecords("0.3.1", "/")...)

	p := parseServiceEntry(entry)
	if p == nil {
		t.Fatal("parseServiceEntry() = nil")
	}
	if p.Version != "0.3.1" || p.Path != "/" {
		t.Errorf("Version = %q, Path = %q", p.Version, p.Path)
	}
}

func TestPortalString(t *testing.T) {
	p := &Portal{Name: "Meta Architect", Host: "studio.local.", IP: "192.168.4.16", Port: 8787}
	want := `Portal "Meta Architect" (studio.local.) at 192.168.4.16:8787`
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewScanner(t *testing.T) {
	s := NewScanner()
	if s.Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", s.Timeout, DefaultScanTimeout)
	}
}

// Live mDNS browsing needs multicast on the host network and is exercised
// manually with `architect portals`.
