package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/cash"
)

// DefaultTicker is the native currency of a freshly initialized chain.
const DefaultTicker = "IOV"

// GenInitOptions will produce some basic options for one rich account, to
// use for dev mode. It requires the hex encoded address of the account and
// accepts an optional native ticker.
//
//   quorumd init <address> [ticker]
func GenInitOptions(args []string) (json.RawMessage, error) {
	if len(args) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "account address is required")
	}
	addr, err := quorum.ParseAddress(args[0])
	if err != nil {
		return nil, errors.Wrap(err, "address")
	}
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	ticker := DefaultTicker
	if len(args) > 1 {
		ticker = args[1]
	}
	if !coin.IsCC(ticker) {
		return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", ticker)
	}

	opts := fmt.Sprintf(`{
		"conf": {"cash": {"native_ticker": %q}},
		"cash": [{"address": %q, "coins": ["123456789 %s"]}],
		"multisig": []
	}`, ticker, addr, ticker)

	// Validate the generated document the same way the chain will.
	var parsed quorum.Options
	if err := json.Unmarshal([]byte(opts), &parsed); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid options: %s", err)
	}
	var accounts []cash.GenesisAccount
	if err := parsed.ReadOptions("cash", &accounts); err != nil {
		return nil, err
	}
	return json.RawMessage(opts), nil
}
