package agent

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	ma "github.com/multiformats/go-multiaddr"
)

var ErrInvalidHost = errors.New("invalid agent host")

// NormalizeHost turns a URL, a bare host[:port] or a multiaddr such as
// /dns4/icp-api.io/tcp/443/https into a canonical scheme://host[:port] URL.
// Default ports are dropped.
func NormalizeHost(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return "", fmt.Errorf("%w: empty", ErrInvalidHost)
	case strings.HasPrefix(raw, "/"):
		return hostFromMultiaddr(raw)
	case strings.Contains(raw, "://"):
		return hostFromURL(raw)
	default:
		return hostFromURL(defaultScheme(raw) + "://" + raw)
	}
}

func hostFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHost, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidHost, u.Scheme)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: missing hostname in %q", ErrInvalidHost, raw)
	}
	if u.User != nil {
		return "", fmt.Errorf("%w: credentials in host URL", ErrInvalidHost)
	}
	if p := strings.Trim(u.Path, "/"); p != "" || u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("%w: host must not carry a path or query", ErrInvalidHost)
	}
	port := u.Port()
	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return "", fmt.Errorf("%w: bad port %q", ErrInvalidHost, port)
		}
	}
	return joinURL(scheme, strings.ToLower(u.Hostname()), port), nil
}

func hostFromMultiaddr(raw string) (string, error) {
	addr, err := ma.NewMultiaddr(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHost, err)
	}

	var name string
	for _, code := range []int{ma.P_DNS, ma.P_DNS4, ma.P_DNS6, ma.P_IP4, ma.P_IP6} {
		if v, err := addr.ValueForProtocol(code); err == nil {
			name = v
			break
		}
	}
	if name == "" {
		return "", fmt.Errorf("%w: multiaddr %s has no host component", ErrInvalidHost, raw)
	}
	port, err := addr.ValueForProtocol(ma.P_TCP)
	if err != nil {
		return "", fmt.Errorf("%w: multiaddr %s has no tcp port", ErrInvalidHost, raw)
	}

	scheme := ""
	if _, err := addr.ValueForProtocol(ma.P_HTTPS); err == nil {
		scheme = "https"
	} else if _, err := addr.ValueForProtocol(ma.P_TLS); err == nil {
		scheme = "https"
	} else if _, err := addr.ValueForProtocol(ma.P_HTTP); err == nil {
		scheme = "http"
	}
	if scheme == "" {
		scheme = "https"
		if port != "443" {
			scheme = defaultScheme(name)
		}
	}
	return joinURL(scheme, strings.ToLower(name), port), nil
}

// defaultScheme picks http for loopback replicas and https otherwise.
func defaultScheme(hostport string) string {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if strings.EqualFold(host, "localhost") {
		return "http"
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return "http"
	}
	return "https"
}

func joinURL(scheme, host, port string) string {
	if (scheme == "https" && port == "443") || (scheme == "http" && port == "80") {
		port = ""
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port == "" {
		return scheme + "://" + host
	}
	return scheme + "://" + host + ":" + port
}
