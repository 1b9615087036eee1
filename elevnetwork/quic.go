package elevnetwork

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"net"
	"time"

	quic "github.com/quic-go/quic-go"
)

// Both ends pin this ALPN, so a QUIC peer that is not a panel or controller
// fails the TLS handshake before any hello is read.
const QUIC_ALPN = "ctboard-lift"

func NewQUICConfig() *quic.Config {
	return &quic.Config{
		KeepAlivePeriod:      2 * time.Second,
		HandshakeIdleTimeout: 3 * time.Second,
		MaxIdleTimeout:       6 * time.Second,
	}
}

// panelCert makes the panel's certificate for one run. host, when set, is
// written into the SANs so the certificate at least names the listen address.
func panelCert(host string) (tls.Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("panel key: %w", err)
	}

	now := time.Now()
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(now.UnixNano()),
		Subject:      pkix.Name{CommonName: "ctboard panel"},
		NotBefore:    now.Add(-time.Minute),
		NotAfter:     now.Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	if ip := net.ParseIP(host); ip != nil {
		tmpl.IPAddresses = []net.IP{ip}
	} else if host != "" {
		tmpl.DNSNames = []string{host}
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("panel cert: %w", err)
	}
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}, nil
}

// panelTLS is the TLS config for the panel (server) or controller side.
func panelTLS(server bool, host string) (*tls.Config, error) {
	conf := &tls.Config{
		NextProtos: []string{QUIC_ALPN},
		MinVersion: tls.VersionTLS13,
	}
	if !server {
		// The panel certificate is minted at startup. Nothing to verify it against.
		conf.InsecureSkipVerify = true
		return conf, nil
	}

	cert, err := panelCert(host)
	if err != nil {
		return nil, err
	}
	conf.Certificates = []tls.Certificate{cert}
	return conf, nil
}

func listenQUIC(listenAddr string, quicConf *quic.Config) (*quic.Listener, error) {
	host, _, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen addr %q: %w", listenAddr, err)
	}
	tlsConf, err := panelTLS(true, host)
	if err != nil {
		return nil, fmt.Errorf("server tls config: %w", err)
	}

	ln, err := quic.ListenAddr(listenAddr, tlsConf, quicConf)
	if err != nil {
		return nil, fmt.Errorf("quic listen: %w", err)
	}
	return ln, nil
}

// acceptPanel waits for the controller's stream and answers its hello. The
// controller writes its hello right after opening the stream, so both the
// stream and the hello are held to helloTimeout.
func acceptPanel(ctx context.Context, conn *quic.Conn, frameSize int) (*quic.Stream, error) {
	helloCtx, cancel := context.WithTimeout(ctx, helloTimeout)
	defer cancel()

	st, err := conn.AcceptStream(helloCtx)
	if err != nil {
		_ = conn.CloseWithError(0, "no stream")
		return nil, fmt.Errorf("accept stream: %w", err)
	}
	if err := exchangeHello(st, false, frameSize); err != nil {
		CloseQUIC(conn, st, "hello failed")
		return nil, err
	}
	return st, nil
}

// dialPanel connects to the panel, opens the single bidirectional stream
// used for all panel traffic and greets the panel on it.
func dialPanel(
	ctx context.Context,
	remoteAddr string,
	quicConf *quic.Config,
	frameSize int,
) (*quic.Conn, *quic.Stream, error) {
	tlsConf, err := panelTLS(false, "")
	if err != nil {
		return nil, nil, err
	}
	conn, err := quic.DialAddr(ctx, remoteAddr, tlsConf, quicConf)
	if err != nil {
		return nil, nil, fmt.Errorf("quic dial: %w", err)
	}

	stCtx, cancel := context.WithTimeout(ctx, openStreamTimeout)
	defer cancel()
	st, err := conn.OpenStreamSync(stCtx)
	if err != nil {
		_ = conn.CloseWithError(0, "open stream failed")
		return nil, nil, fmt.Errorf("open stream: %w", err)
	}

	if err := exchangeHello(st, true, frameSize); err != nil {
		CloseQUIC(conn, st, "hello failed")
		return nil, nil, err
	}
	return conn, st, nil
}

func CloseQUIC(conn *quic.Conn, stream *quic.Stream, reason string) {
	if stream != nil {
		_ = stream.Close()
	}
	if conn != nil {
		_ = conn.CloseWithError(0, reason)
	}
}
