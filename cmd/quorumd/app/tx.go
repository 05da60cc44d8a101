package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/sigs"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	RegisterAmino(cdc)
}

// RegisterAmino registers all message types supported by the application.
// Registered names are the message paths.
func RegisterAmino(cdc *amino.Codec) {
	cdc.RegisterInterface((*quorum.Msg)(nil), nil)
	cdc.RegisterConcrete(&cash.SendMsg{}, "cash/send", nil)
	cdc.RegisterConcrete(&multisig.CreateWalletMsg{}, "multisig/create_wallet", nil)
	cdc.RegisterConcrete(&multisig.UpdateWalletMsg{}, "multisig/update_wallet", nil)
	cdc.RegisterConcrete(&multisig.CreateProposalMsg{}, "multisig/create_proposal", nil)
	cdc.RegisterConcrete(&multisig.ApproveProposalMsg{}, "multisig/approve_proposal", nil)
	cdc.RegisterConcrete(&multisig.ExecuteProposalMsg{}, "multisig/execute_proposal", nil)
	cdc.RegisterConcrete(&multisig.CancelProposalMsg{}, "multisig/cancel_proposal", nil)
}

// Tx is the transaction format of the application. It carries a single
// message and the signatures of all the signers.
type Tx struct {
	Msg        quorum.Msg           `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

var _ quorum.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the message carried by the transaction.
func (tx *Tx) GetMsg() (quorum.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the encoded transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	raw, err := cdc.MarshalBinaryBare(unsigned)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot encode: %s", err)
	}
	return raw, nil
}

// Marshal returns the wire representation of the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(*tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot encode: %s", err)
	}
	return raw, nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (quorum.Tx, error) {
	var tx Tx
	if err := cdc.UnmarshalBinaryBare(bz, &tx); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode: %s", err)
	}
	return &tx, nil
}
