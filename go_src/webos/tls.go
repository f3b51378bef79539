package webos

import (
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net"
	"os"
	"time"
)

// ExtractCertificate dials host:port over TLS, without verifying anything,
// purely to capture the peer's leaf certificate for first-run pinning.
// webOS TVs present a self-signed certificate per device, so there is no
// CA chain to validate against; pinning the observed fingerprint is the
// only meaningful trust model.
func ExtractCertificate(host string, port int, timeout time.Duration) (*x509.Certificate, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	dialer := &net.Dialer{Timeout: timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{InsecureSkipVerify: true})
	if err != nil {
		return nil, fmt.Errorf("webos: extract certificate from %s: %w", addr, err)
	}
	defer conn.Close()

	state := conn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, fmt.Errorf("webos: %s presented no certificate", addr)
	}
	return state.PeerCertificates[0], nil
}

// SaveCertificatePEM writes cert to path in PEM form, for reuse across
// process restarts.
func SaveCertificatePEM(cert *x509.Certificate, path string) error {
	block := &pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw}
	return os.WriteFile(path, pem.EncodeToMemory(block), 0o600)
}

// LoadCertificatePEM reads back a certificate written by SaveCertificatePEM.
func LoadCertificatePEM(path string) (*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("webos: read certificate %s: %w", path, err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("webos: no PEM block found in %s", path)
	}
	return x509.ParseCertificate(block.Bytes)
}

func fingerprint(cert *x509.Certificate) string {
	sum := sha256.Sum256(cert.Raw)
	return fmt.Sprintf("%x", sum)
}

// VerifyCertificate compares the pinned and observed certificates by
// SHA-256 fingerprint, returning CertificateMismatchError on any drift.
func VerifyCertificate(host string, pinned, observed *x509.Certificate) error {
	p, o := fingerprint(pinned), fingerprint(observed)
	if p != o {
		return &CertificateMismatchError{Host: host, PinnedSHA256: p, ObservedSHA256: o}
	}
	return nil
}

// BuildTLSConfig returns a tls.Config whose only trust check is that the
// peer's leaf certificate matches pinned by SHA-256 fingerprint. Normal
// chain and hostname verification is skipped because webOS TVs only ever
// present a self-signed certificate.
func BuildTLSConfig(host string, pinned *x509.Certificate) *tls.Config {
	pinnedFingerprint := fingerprint(pinned)
	return &tls.Config{
		InsecureSkipVerify: true,
		VerifyPeerCertificate: func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			if len(rawCerts) == 0 {
				return fmt.Errorf("webos: %s presented no certificate", host)
			}
			leaf, err := x509.ParseCertificate(rawCerts[0])
			if err != nil {
				return fmt.Errorf("webos: parse peer certificate from %s: %w", host, err)
			}
			observed := fingerprint(leaf)
			if observed != pinnedFingerprint {
				return &CertificateMismatchError{Host: host, PinnedSHA256: pinnedFingerprint, ObservedSHA256: observed}
			}
			return nil
		},
	}
}
