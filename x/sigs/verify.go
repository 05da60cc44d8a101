package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"golang.org/x/crypto/ed25519"
)

// signVersion opens every signed message. Bumping it invalidates all
// signatures produced with an older layout.
var signVersion = [4]byte{0, 0xCA, 0xFE, 0}

// SignBytes returns the sha512 digest that a key signs for a transaction
// payload. The digest binds the payload to one chain and one sequence:
//
//   version (4) | len(chainID) (1) | chainID | sequence (8, big endian) | payload
func SignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrapf(ErrInvalidSequence, "sequence %d", seq)
	}
	if !quorum.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}

	var head [4 + 1]byte
	copy(head[:], signVersion[:])
	head[4] = uint8(len(chainID))
	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], uint64(seq))

	h := sha512.New()
	h.Write(head[:])
	h.Write([]byte(chainID))
	h.Write(seqBytes[:])
	h.Write(payload)
	return h.Sum(nil), nil
}

// SignTx signs the transaction with key for the given chain and sequence.
func SignTx(key ed25519.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	digest, err := SignBytes(payload, chainID, seq)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		PubKey:    key.Public().(ed25519.PublicKey),
		Signature: ed25519.Sign(key, digest),
		Sequence:  seq,
	}, nil
}

// verifyTx checks every signature of tx and returns the conditions of the
// signers in signature order. Each verified signer has its sequence
// advanced in db.
func verifyTx(db quorum.KVStore, tx SignedTx, chainID string) ([]quorum.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]quorum.Condition, len(sigs))
	for i, sig := range sigs {
		if signers[i], err = verify(db, sig, payload, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
	}
	return signers, nil
}

// verify checks a single signature over payload. A signature is only
// accepted with the current sequence of its key, which is then incremented.
func verify(db quorum.KVStore, sig *StdSignature, payload []byte, chainID string) (quorum.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	users := NewUserBucket()
	user, err := users.GetOrCreate(db, sig.PubKey)
	if err != nil {
		return nil, err
	}
	digest, err := SignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !ed25519.Verify(ed25519.PublicKey(user.PubKey), digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.consume(sig.Sequence); err != nil {
		return nil, err
	}
	if err := users.Save(db, user); err != nil {
		return nil, err
	}
	return user.Condition(), nil
}
