package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/mdns"
)

// DiscoveredHub represents a DIRIGERA hub found during discovery
type DiscoveredHub struct {
	// IP address of the hub
	Host string
	// Unique hub identifier from mDNS TXT records
	HubID string
	// Name from mDNS
	Name string
}

// DiscoverMDNS discovers DIRIGERA hubs on the local network. The hub
// advertises the IKEA home smart provisioning service (_ihsp._tcp).
func DiscoverMDNS(ctx context.Context, timeout time.Duration) ([]DiscoveredHub, error) {
	var hubs []DiscoveredHub
	var mu sync.Mutex

	entriesCh := make(chan *mdns.ServiceEntry, 10)

	go func() {
		for entry := range entriesCh {
			if entry.AddrV4 == nil {
				continue
			}
			hub := DiscoveredHub{
				Host: entry.AddrV4.String(),
				Name: entry.Name,
			}

			// Parse hub id from TXT records
			for _, txt := range entry.InfoFields {
				if strings.HasPrefix(txt, "uuid=") {
					hub.HubID = strings.TrimPrefix(txt, "uuid=")
				}
			}

			// Use hostname if no name
			if hub.Name == "" && entry.Host != "" {
				hub.Name = strings.TrimSuffix(entry.Host, ".")
			}

			mu.Lock()
			hubs = append(hubs, hub)
			mu.Unlock()
		}
	}()

	params := mdns.DefaultParams("_ihsp._tcp")
	params.Entries = entriesCh
	params.Timeout = timeout
	params.DisableIPv6 = true

	err := mdns.Query(params)
	close(entriesCh)

	if err != nil {
		return hubs, fmt.Errorf("mDNS query failed: %w", err)
	}

	return hubs, nil
}

// Probe checks whether a manually entered host answers like a DIRIGERA
// hub. An unauthenticated status request returning any HTTP response
// (including 401/403) counts as reachable; only transport failures fail.
func Probe(ctx context.Context, host string, timeout time.Duration) (err error) {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}

	url := fmt.Sprintf("https://%s/v1/hub/status", hostWithPort(host))
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("hub not reachable at %s: %w", host, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	return nil
}
