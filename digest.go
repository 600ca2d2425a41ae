package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// Digest is a 256-bit hash rendered as 64 lowercase hex characters.
type Digest interface {
	Name() string
	Sum(s string) string
}

type digest struct {
	name string
	sum  func([]byte) [32]byte
}

func (d digest) Name() string { return d.name }

func (d digest) Sum(s string) string {
	h := d.sum([]byte(s))
	return hex.EncodeToString(h[:])
}

// Supported digests. DigestSHA256 is the default and the one golden values
// are recorded with.
var (
	DigestSHA256 Digest = digest{name: "sha256", sum: sha256.Sum256}
	DigestSHA3   Digest = digest{name: "sha3-256", sum: sha3.Sum256}
	DigestBLAKE3 Digest = digest{name: "blake3", sum: blake3.Sum256}
)

// Digests lists the supported digests by name.
func Digests() []Digest {
	return []Digest{DigestSHA256, DigestSHA3, DigestBLAKE3}
}

// DigestByName returns the digest with the given name, case-insensitively.
func DigestByName(name string) (Digest, error) {
	for _, d := range Digests() {
		if strings.EqualFold(d.Name(), name) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("fingerprint: unknown digest %q", name)
}
