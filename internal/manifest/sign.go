package manifest

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// Signature describes the detached signature of a manifest.
type Signature struct {
	Type          string `json:"type"`
	CertSubject   string `json:"certSubject"`
	Issuer        string `json:"issuer"`
	SignatureFile string `json:"signatureFile,omitempty"`
}

// JWS is an RS256 JSON Web Signature in flattened form with a detached
// payload: the signed bytes are the manifest file itself.
type JWS struct {
	Protected string `json:"protected"`
	Payload   string `json:"payload,omitempty"`
	Signature string `json:"signature"`
}

var ErrBadSignature = errors.New("manifest: signature does not verify")

var protectedHeader = base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","b64":true}`))

func signingInput(protected string, payload []byte) [32]byte {
	return sha256.Sum256([]byte(protected + "." + base64.RawURLEncoding.EncodeToString(payload)))
}

// SignAndSave records the signer in m, writes it to out and a detached
// JWS over the written bytes to sigPath.
func SignAndSave(m Manifest, out, sigPath string, keyPEM, certPEM []byte) error {
	cert, err := parseCertificate(certPEM)
	if err != nil {
		return err
	}
	key, err := parseRSAPrivateKey(keyPEM)
	if err != nil {
		return err
	}
	m.Signature = &Signature{
		Type:          "jws-detached",
		CertSubject:   cert.Subject.String(),
		Issuer:        cert.Issuer.String(),
		SignatureFile: sigPath,
	}
	payload, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	h := signingInput(protectedHeader, payload)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, h[:])
	if err != nil {
		return err
	}
	jws, err := json.MarshalIndent(JWS{
		Protected: protectedHeader,
		Signature: base64.RawURLEncoding.EncodeToString(sig),
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, payload, 0o644); err != nil {
		return err
	}
	return os.WriteFile(sigPath, jws, 0o644)
}

// Verify checks the detached JWS in sigJSON over payload against the
// public key of the PEM certificate.
func Verify(payload, sigJSON, certPEM []byte) error {
	var jws JWS
	if err := json.Unmarshal(sigJSON, &jws); err != nil {
		return fmt.Errorf("parse jws: %w", err)
	}
	cert, err := parseCertificate(certPEM)
	if err != nil {
		return err
	}
	pub, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return errors.New("manifest: certificate does not hold an RSA key")
	}
	sig, err := base64.RawURLEncoding.DecodeString(jws.Signature)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}
	h := signingInput(jws.Protected, payload)
	if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, h[:], sig); err != nil {
		return ErrBadSignature
	}
	return nil
}

func parseCertificate(pemBytes []byte) (*x509.Certificate, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("parse cert: no pem block")
	}
	return x509.ParseCertificate(block.Bytes)
}

func parseRSAPrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("parse key: no pem block")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := k.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("parse key: not an RSA key")
	}
	return key, nil
}
