package multisig

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
)

// Wallet is the configuration of a shared-custody wallet: the signers that
// may authorize spending and how many of them are required.
type Wallet struct {
	// Signers is the ordered set of addresses allowed to create and
	// approve proposals.
	Signers []quorum.Address `protobuf:"bytes,1,rep,name=signers,proto3,casttype=github.com/iov-one/quorum.Address" json:"signers,omitempty"`
	// Threshold is the number of distinct signer approvals required to
	// execute a proposal.
	Threshold uint32 `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold,omitempty"`
	// ProposalCount is the source of proposal identifiers. It is never
	// decremented.
	ProposalCount uint64 `protobuf:"varint,3,opt,name=proposal_count,json=proposalCount,proto3" json:"proposal_count,omitempty"`
	// Creator together with Nonce derives the wallet identifier.
	Creator quorum.Address `protobuf:"bytes,4,opt,name=creator,proto3,casttype=github.com/iov-one/quorum.Address" json:"creator,omitempty"`
	Nonce   uint64         `protobuf:"varint,5,opt,name=nonce,proto3" json:"nonce,omitempty"`
	// Address is the custody account holding the wallet funds.
	Address quorum.Address `protobuf:"bytes,6,opt,name=address,proto3,casttype=github.com/iov-one/quorum.Address" json:"address,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Proposal is a request to move funds out of the wallet custody account.
type Proposal struct {
	WalletID    []byte         `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	ID          uint64         `protobuf:"varint,2,opt,name=id,proto3" json:"id,omitempty"`
	Creator     quorum.Address `protobuf:"bytes,3,opt,name=creator,proto3,casttype=github.com/iov-one/quorum.Address" json:"creator,omitempty"`
	Destination quorum.Address `protobuf:"bytes,4,opt,name=destination,proto3,casttype=github.com/iov-one/quorum.Address" json:"destination,omitempty"`
	Amount      uint64         `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
	// Asset is the ticker of the transferred currency. Empty value
	// refers to the native currency.
	Asset          string           `protobuf:"bytes,6,opt,name=asset,proto3" json:"asset,omitempty"`
	Approvals      []quorum.Address `protobuf:"bytes,7,rep,name=approvals,proto3,casttype=github.com/iov-one/quorum.Address" json:"approvals,omitempty"`
	Executed       bool             `protobuf:"varint,8,opt,name=executed,proto3" json:"executed,omitempty"`
	Cancelled      bool             `protobuf:"varint,9,opt,name=cancelled,proto3" json:"cancelled,omitempty"`
	ExpirationTime quorum.UnixTime  `protobuf:"varint,10,opt,name=expiration_time,json=expirationTime,proto3,casttype=github.com/iov-one/quorum.UnixTime" json:"expiration_time,omitempty"`
}

func (m *Proposal) Reset()         { *m = Proposal{} }
func (m *Proposal) String() string { return proto.CompactTextString(m) }
func (*Proposal) ProtoMessage()    {}

// CreateWalletMsg creates a new wallet owned by the given signers.
type CreateWalletMsg struct {
	Signers   []quorum.Address `protobuf:"bytes,1,rep,name=signers,proto3,casttype=github.com/iov-one/quorum.Address" json:"signers,omitempty"`
	Threshold uint32           `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold,omitempty"`
	Nonce     uint64           `protobuf:"varint,3,opt,name=nonce,proto3" json:"nonce,omitempty"`
}

func (m *CreateWalletMsg) Reset()         { *m = CreateWalletMsg{} }
func (m *CreateWalletMsg) String() string { return proto.CompactTextString(m) }
func (*CreateWalletMsg) ProtoMessage()    {}

// CreateProposalMsg requests a transfer out of the wallet.
type CreateProposalMsg struct {
	WalletID       []byte          `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	Destination    quorum.Address  `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/iov-one/quorum.Address" json:"destination,omitempty"`
	Amount         uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Asset          string          `protobuf:"bytes,4,opt,name=asset,proto3" json:"asset,omitempty"`
	ExpirationTime quorum.UnixTime `protobuf:"varint,5,opt,name=expiration_time,json=expirationTime,proto3,casttype=github.com/iov-one/quorum.UnixTime" json:"expiration_time,omitempty"`
}

func (m *CreateProposalMsg) Reset()         { *m = CreateProposalMsg{} }
func (m *CreateProposalMsg) String() string { return proto.CompactTextString(m) }
func (*CreateProposalMsg) ProtoMessage()    {}

// ApproveProposalMsg records the approval of the signer.
type ApproveProposalMsg struct {
	WalletID   []byte `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	ProposalID uint64 `protobuf:"varint,2,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id,omitempty"`
}

func (m *ApproveProposalMsg) Reset()         { *m = ApproveProposalMsg{} }
func (m *ApproveProposalMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveProposalMsg) ProtoMessage()    {}

// ExecuteProposalMsg releases the funds of an approved proposal.
type ExecuteProposalMsg struct {
	WalletID   []byte `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	ProposalID uint64 `protobuf:"varint,2,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id,omitempty"`
}

func (m *ExecuteProposalMsg) Reset()         { *m = ExecuteProposalMsg{} }
func (m *ExecuteProposalMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteProposalMsg) ProtoMessage()    {}

// CancelProposalMsg withdraws a proposal. Only the creator can cancel.
type CancelProposalMsg struct {
	WalletID   []byte `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	ProposalID uint64 `protobuf:"varint,2,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id,omitempty"`
}

func (m *CancelProposalMsg) Reset()         { *m = CancelProposalMsg{} }
func (m *CancelProposalMsg) String() string { return proto.CompactTextString(m) }
func (*CancelProposalMsg) ProtoMessage()    {}

// UpdateWalletMsg replaces the signers and threshold of a wallet.
type UpdateWalletMsg struct {
	WalletID  []byte           `protobuf:"bytes,1,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	Signers   []quorum.Address `protobuf:"bytes,2,rep,name=signers,proto3,casttype=github.com/iov-one/quorum.Address" json:"signers,omitempty"`
	Threshold uint32           `protobuf:"varint,3,opt,name=threshold,proto3" json:"threshold,omitempty"`
	// AllSignersApproved asserts that every current signer consents to
	// the change.
	AllSignersApproved bool `protobuf:"varint,4,opt,name=all_signers_approved,json=allSignersApproved,proto3" json:"all_signers_approved,omitempty"`
}

func (m *UpdateWalletMsg) Reset()         { *m = UpdateWalletMsg{} }
func (m *UpdateWalletMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateWalletMsg) ProtoMessage()    {}
