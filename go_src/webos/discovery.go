package webos

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

const ssdpAddress = "239.255.255.250:1900"

// defaultSearchTargets is what Discover sends: webOS's second-screen
// service, plus a UPnP root-device fallback for TVs that only answer
// generic root-device searches.
var defaultSearchTargets = []string{
	"urn:lge-com:service:webos-second-screen:1",
	"upnp:rootdevice",
}

// DiscoveredDevice is one SSDP M-SEARCH response, before its LOCATION
// header has been resolved into a connectable Endpoint.
type DiscoveredDevice struct {
	Location     string
	USN          string
	Server       string
	SearchTarget string
	RemoteAddr   string
}

// Discover broadcasts an SSDP M-SEARCH for the default search targets,
// collects responses for timeout, and returns a deduplicated (by host)
// list of candidate TV endpoints derived from each response's LOCATION
// header. webOS TVs serve SSAP over TLS on port 3001, so every derived
// Endpoint is secure.
func Discover(ctx context.Context, timeout time.Duration) ([]Endpoint, error) {
	return DiscoverWithTargets(ctx, timeout, defaultSearchTargets)
}

// DiscoverWithTargets is Discover with an explicit search target list, for
// callers that need a narrower or broader SSDP search than the default.
func DiscoverWithTargets(ctx context.Context, timeout time.Duration, searchTargets []string) ([]Endpoint, error) {
	devices, err := gatherResponses(ctx, searchTargets, timeout)
	if err != nil {
		return nil, err
	}
	return endpointsFromDevices(devices), nil
}

// gatherResponses broadcasts an SSDP M-SEARCH for each searchTarget and
// collects every response received within timeout. It returns whatever it
// gathered even when ctx is cancelled or the read deadline expires;
// discovery is inherently best-effort (UDP, no delivery guarantee), never
// an error in itself.
func gatherResponses(ctx context.Context, searchTargets []string, timeout time.Duration) ([]DiscoveredDevice, error) {
	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return nil, fmt.Errorf("webos: open discovery socket: %w", err)
	}
	defer conn.Close()

	raddr, err := net.ResolveUDPAddr("udp4", ssdpAddress)
	if err != nil {
		return nil, fmt.Errorf("webos: resolve ssdp multicast address: %w", err)
	}

	for _, target := range searchTargets {
		request := buildSearchRequest(target)
		if _, err := conn.WriteTo([]byte(request), raddr); err != nil {
			return nil, fmt.Errorf("webos: send M-SEARCH for %s: %w", target, err)
		}
	}

	_ = conn.SetReadDeadline(time.Now().Add(timeout))

	var devices []DiscoveredDevice
	buf := make([]byte, 2048)
	for {
		select {
		case <-ctx.Done():
			return devices, nil
		default:
		}
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			return devices, nil
		}
		dev := parseSearchResponse(buf[:n])
		dev.RemoteAddr = addr.String()
		devices = append(devices, dev)
	}
}

// hostFromLocation pulls the bare host out of a LOCATION URL such as
// "http://192.168.1.50:1400/description.xml".
func hostFromLocation(location string) (string, bool) {
	u, err := url.Parse(location)
	if err != nil || u.Hostname() == "" {
		return "", false
	}
	return u.Hostname(), true
}

// endpointsFromDevices resolves each device's LOCATION header into a
// {host, port=3001, secure=true} Endpoint and deduplicates by host.
func endpointsFromDevices(devices []DiscoveredDevice) []Endpoint {
	seen := make(map[string]bool)
	var endpoints []Endpoint
	for _, dev := range devices {
		host, ok := hostFromLocation(dev.Location)
		if !ok || seen[host] {
			continue
		}
		seen[host] = true
		endpoints = append(endpoints, NewEndpoint(host, true, 3001))
	}
	return endpoints
}

func buildSearchRequest(searchTarget string) string {
	return "M-SEARCH * HTTP/1.1\r\n" +
		"HOST: " + ssdpAddress + "\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"MX: 3\r\n" +
		"ST: " + searchTarget + "\r\n\r\n"
}

func parseSearchResponse(data []byte) DiscoveredDevice {
	var dev DiscoveredDevice
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		switch key {
		case "LOCATION":
			dev.Location = value
		case "USN":
			dev.USN = value
		case "SERVER":
			dev.Server = value
		case "ST":
			dev.SearchTarget = value
		}
	}
	return dev
}
