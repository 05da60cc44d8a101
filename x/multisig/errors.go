package multisig

import "github.com/iov-one/quorum/errors"

// ABCI Response Codes
// x/multisig reserves 1100 ~ 1120.
var (
	ErrNotASigner              = errors.Register(1100, "not a signer")
	ErrThresholdNotMet         = errors.Register(1101, "threshold not met")
	ErrProposalExpired         = errors.Register(1102, "proposal expired")
	ErrProposalAlreadyExecuted = errors.Register(1103, "proposal already executed")
	ErrProposalCancelled       = errors.Register(1104, "proposal cancelled")
	ErrNotAllSignersApproved   = errors.Register(1105, "not all signers approved")
	ErrInvalidThreshold        = errors.Register(1106, "invalid threshold")
	ErrMaxSignersExceeded      = errors.Register(1107, "max signers exceeded")

	// ErrInsufficientApprovals is returned when a proposal does not have
	// enough approvals of the current signers to be executed.
	ErrInsufficientApprovals = ErrThresholdNotMet
)
