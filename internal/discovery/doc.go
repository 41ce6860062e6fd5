// Package discovery finds running portal preview servers on the local network.
//
// Portal servers advertise themselves over multicast DNS using the
// "_architect._tcp" service type. Each advertisement carries TXT records with
// the server version and the path of the preview page.
//
// # Discovery Process
//
//  1. Browse for "_architect._tcp" services in the "local." domain
//  2. Convert every service entry into a Portal
//  3. Return the collected portals once the timeout expires
//
// # Usage Example
//
//	portals, err := discovery.Discover(ctx, 3*time.Second)
//	if err != nil {
//	    return err
//	}
//	for _, p := range portals {
//	    fmt.Printf("%s at %s\n", p.Name, p.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - The portal must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
