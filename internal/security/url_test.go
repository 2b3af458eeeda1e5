package security

import (
	"errors"
	"net"
	"testing"
)

func stubLookup(t *testing.T, fn func(host string) ([]net.IP, error)) {
	t.Helper()
	old := lookupIP
	lookupIP = fn
	t.Cleanup(func() { lookupIP = old })
}

func TestValidateFetchURL(t *testing.T) {
	stubLookup(t, func(host string) ([]net.IP, error) {
		return []net.IP{net.ParseIP("93.184.216.34")}, nil
	})

	valid := []string{
		"https://example.com/article",
		"http://news.example.co.kr/read?id=1",
		"https://93.184.216.34/page",
	}
	for _, u := range valid {
		if err := ValidateFetchURL(u); err != nil {
			t.Errorf("ValidateFetchURL(%q) = %v, want nil", u, err)
		}
	}

	invalid := []string{
		"ftp://example.com/file",
		"file:///etc/passwd",
		"https://localhost/admin",
		"http://127.0.0.1:8080/metrics",
		"http://10.0.0.5/internal",
		"http://192.168.1.1/router",
		"http://169.254.169.254/latest/meta-data",
		"http://service.internal/api",
		"http://box.local/share",
		"not a url",
		"",
	}
	for _, u := range invalid {
		if err := ValidateFetchURL(u); err == nil {
			t.Errorf("ValidateFetchURL(%q) = nil, want error", u)
		}
	}
}

func TestValidateFetchURLBlocksPrivateResolution(t *testing.T) {
	stubLookup(t, func(host string) ([]net.IP, error) {
		return []net.IP{net.ParseIP("93.184.216.34"), net.ParseIP("10.20.30.40")}, nil
	})

	if err := ValidateFetchURL("https://intranet.example.com/status"); err == nil {
		t.Fatal("expected host resolving to a private ip to be blocked")
	}
}

func TestValidateFetchURLResolutionFailure(t *testing.T) {
	stubLookup(t, func(host string) ([]net.IP, error) {
		return nil, errors.New("no such host")
	})

	if err := ValidateFetchURL("https://nxdomain.example.com"); err == nil {
		t.Fatal("expected unresolvable host to be rejected")
	}
}
