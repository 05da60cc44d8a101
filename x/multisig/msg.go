package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	pathCreateWalletMsg    = "multisig/create_wallet"
	pathCreateProposalMsg  = "multisig/create_proposal"
	pathApproveProposalMsg = "multisig/approve_proposal"
	pathExecuteProposalMsg = "multisig/execute_proposal"
	pathCancelProposalMsg  = "multisig/cancel_proposal"
	pathUpdateWalletMsg    = "multisig/update_wallet"
)

var _ quorum.Msg = (*CreateWalletMsg)(nil)

func (CreateWalletMsg) Path() string {
	return pathCreateWalletMsg
}

func (m *CreateWalletMsg) Validate() error {
	return validateSigners(m.Signers, m.Threshold)
}

var _ quorum.Msg = (*CreateProposalMsg)(nil)

func (CreateProposalMsg) Path() string {
	return pathCreateProposalMsg
}

func (m *CreateProposalMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "WalletID", validateWalletID(m.WalletID))
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	errs = errors.AppendField(errs, "Amount", validateAmount(m.Amount))
	errs = errors.AppendField(errs, "Asset", validateAsset(m.Asset))
	errs = errors.AppendField(errs, "ExpirationTime", m.ExpirationTime.Validate())
	return errs
}

var _ quorum.Msg = (*ApproveProposalMsg)(nil)

func (ApproveProposalMsg) Path() string {
	return pathApproveProposalMsg
}

func (m *ApproveProposalMsg) Validate() error {
	return errors.Field("WalletID", validateWalletID(m.WalletID), "invalid")
}

var _ quorum.Msg = (*ExecuteProposalMsg)(nil)

func (ExecuteProposalMsg) Path() string {
	return pathExecuteProposalMsg
}

func (m *ExecuteProposalMsg) Validate() error {
	return errors.Field("WalletID", validateWalletID(m.WalletID), "invalid")
}

var _ quorum.Msg = (*CancelProposalMsg)(nil)

func (CancelProposalMsg) Path() string {
	return pathCancelProposalMsg
}

func (m *CancelProposalMsg) Validate() error {
	return errors.Field("WalletID", validateWalletID(m.WalletID), "invalid")
}

var _ quorum.Msg = (*UpdateWalletMsg)(nil)

func (UpdateWalletMsg) Path() string {
	return pathUpdateWalletMsg
}

// Validate requires the unanimity flag before the new configuration is
// checked.
func (m *UpdateWalletMsg) Validate() error {
	if !m.AllSignersApproved {
		return errors.Wrap(ErrNotAllSignersApproved, "unanimity not asserted")
	}
	if err := validateWalletID(m.WalletID); err != nil {
		return errors.Field("WalletID", err, "invalid")
	}
	return validateSigners(m.Signers, m.Threshold)
}
