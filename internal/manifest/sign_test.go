package manifest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testSigner(t *testing.T) (keyPEM, certPEM []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "edid lab"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("CreateCertificate: %v", err)
	}
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	return keyPEM, certPEM
}

func TestSignAndVerify(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "panel.bin")
	if err := os.WriteFile(in, []byte{0, 0xff}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m, err := Build([]string{in})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	keyPEM, certPEM := testSigner(t)
	out := filepath.Join(dir, "manifest.json")
	sigPath := filepath.Join(dir, "manifest.jws")
	if err := SignAndSave(m, out, sigPath, keyPEM, certPEM); err != nil {
		t.Fatalf("SignAndSave: %v", err)
	}
	payload, _ := os.ReadFile(out)
	sig, _ := os.ReadFile(sigPath)
	if err := Verify(payload, sig, certPEM); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	var saved Manifest
	if err := json.Unmarshal(payload, &saved); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if saved.Signature == nil || saved.Signature.CertSubject != "CN=edid lab" {
		t.Fatalf("signature %+v", saved.Signature)
	}

	payload[len(payload)-2] ^= 0x01
	if err := Verify(payload, sig, certPEM); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("tampered manifest: %v", err)
	}
	_, otherCert := testSigner(t)
	payload[len(payload)-2] ^= 0x01
	if err := Verify(payload, sig, otherCert); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("wrong certificate: %v", err)
	}
}
