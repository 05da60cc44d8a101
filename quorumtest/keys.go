package quorumtest

import (
	"crypto/rand"

	"github.com/iov-one/quorum"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a fresh ed25519 key pair.
func NewKey() (ed25519.PublicKey, ed25519.PrivateKey) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return pub, priv
}

// NewCondition returns a condition that is unique for every call, shaped
// like a signature condition of a fresh ed25519 key.
func NewCondition() quorum.Condition {
	pub, _ := NewKey()
	return quorum.NewCondition("sigs", "ed25519", pub)
}
