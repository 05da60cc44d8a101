package quorum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/quorum/errors"
)

const (
	// AddressLength is the size of every valid address.
	AddressLength = 20

	// AddressHRP prefixes bech32 encoded addresses.
	AddressHRP = "quorum"
)

// Address identifies an account, a wallet or a signer. It is the first
// AddressLength bytes of the sha256 digest of a condition.
type Address []byte

// NewAddress digests data into an address. nil stays nil.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address: %X", []byte(a))
	}
	return nil
}

func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return a.upperHex()
}

func (a Address) upperHex() string {
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 encodes the address with the AddressHRP prefix.
func (a Address) Bech32() (string, error) {
	groups, err := bech32.ConvertBits(a, 8, 5, true)
	if err == nil {
		var s string
		if s, err = bech32.Encode(AddressHRP, groups); err == nil {
			return s, nil
		}
	}
	return "", errors.Wrapf(errors.ErrInput, "bech32: %s", err)
}

// MarshalJSON writes the address as an uppercase hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.upperHex())
}

// UnmarshalJSON accepts any form understood by ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "address must be a json string")
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// addressDecoders maps an encoding prefix to its decoder.
var addressDecoders = map[string]func(string) (Address, error){
	"hex":    decodeHexAddress,
	"cond":   decodeConditionAddress,
	"bech32": decodeBech32Address,
}

// ParseAddress reads an address written as "<format>:<value>", where format
// is one of hex, cond or bech32. A value without a prefix is read as hex.
// An empty value is a nil address.
func ParseAddress(s string) (Address, error) {
	format, value := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	if value == "" {
		return nil, nil
	}
	decode, ok := addressDecoders[format]
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "address format %q", format)
	}
	addr, err := decode(value)
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

func decodeHexAddress(s string) (Address, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "hex address: %s", err)
	}
	return raw, nil
}

func decodeConditionAddress(s string) (Address, error) {
	c, err := parseCondition(s)
	if err != nil {
		return nil, err
	}
	return c.Address(), nil
}

func decodeBech32Address(s string) (Address, error) {
	hrp, groups, err := bech32.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 address: %s", err)
	}
	if hrp != AddressHRP {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 prefix %q, want %q", hrp, AddressHRP)
	}
	raw, err := bech32.ConvertBits(groups, 5, 8, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 address: %s", err)
	}
	return raw, nil
}
