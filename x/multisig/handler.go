package multisig

import (
	"strconv"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	tagWallet   = "multisig-wallet"
	tagProposal = "multisig-proposal"
)

// TransferService moves funds between accounts. It is used to release the
// funds of an executed proposal from the wallet custody account.
type TransferService interface {
	Transfer(db quorum.KVStore, src, dest quorum.Address, amount uint64, asset string) error
}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, transfer TransferService) {
	wallets := NewWalletBucket()
	proposals := NewProposalBucket()
	locks := newRecordLocks()

	r.Handle(pathCreateWalletMsg, CreateWalletHandler{auth: auth, wallets: wallets})
	r.Handle(pathUpdateWalletMsg, UpdateWalletHandler{auth: auth, wallets: wallets})
	r.Handle(pathCreateProposalMsg, CreateProposalHandler{auth: auth, wallets: wallets, proposals: proposals})
	r.Handle(pathApproveProposalMsg, ApproveProposalHandler{auth: auth, wallets: wallets, proposals: proposals, locks: locks})
	r.Handle(pathExecuteProposalMsg, ExecuteProposalHandler{auth: auth, wallets: wallets, proposals: proposals, locks: locks, transfer: transfer})
	r.Handle(pathCancelProposalMsg, CancelProposalHandler{auth: auth, proposals: proposals, locks: locks})
}

// RegisterQuery registers wallet and proposal buckets for querying.
func RegisterQuery(qr quorum.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
	qr.Register("/proposals", NewProposalBucket())
}

// CreateWalletHandler creates a new wallet. The main signer of the
// transaction together with the message nonce derive the wallet identifier.
type CreateWalletHandler struct {
	auth    x.Authenticator
	wallets *WalletBucket
}

var _ quorum.Handler = CreateWalletHandler{}

func (h CreateWalletHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h CreateWalletHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, creator, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	id := WalletID(creator, msg.Nonce)
	wallet := &Wallet{
		Signers:   msg.Signers,
		Threshold: msg.Threshold,
		Creator:   creator,
		Nonce:     msg.Nonce,
		Address:   CustodyCondition(id).Address(),
	}
	// A wallet can be created only once. Storage rejects a second
	// creation at the same location.
	if err := h.wallets.Insert(db, id, wallet); err != nil {
		return nil, errors.Wrap(err, "cannot store wallet")
	}

	quorum.GetLogger(ctx).Info("wallet created",
		"wallet", quorum.Address(id), "signers", len(wallet.Signers), "threshold", wallet.Threshold)
	return &quorum.DeliverResult{
		Data: id,
		Tags: []common.KVPair{walletTag(id)},
	}, nil
}

func (h CreateWalletHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*CreateWalletMsg, quorum.Address, error) {
	var msg CreateWalletMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "wallet creator must sign")
	}
	return &msg, signer.Address(), nil
}

// UpdateWalletHandler replaces the signer set and threshold of a wallet.
// Every current signer must approve the change.
type UpdateWalletHandler struct {
	auth    x.Authenticator
	wallets *WalletBucket
}

var _ quorum.Handler = UpdateWalletHandler{}

func (h UpdateWalletHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h UpdateWalletHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, wallet, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	wallet.Signers = msg.Signers
	wallet.Threshold = msg.Threshold
	if err := h.wallets.Put(db, msg.WalletID, wallet); err != nil {
		return nil, errors.Wrap(err, "cannot store wallet")
	}
	return &quorum.DeliverResult{
		Tags: []common.KVPair{walletTag(msg.WalletID)},
	}, nil
}

func (h UpdateWalletHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*UpdateWalletMsg, *Wallet, error) {
	var msg UpdateWalletMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	wallet, err := h.wallets.GetWallet(db, msg.WalletID)
	if err != nil {
		return nil, nil, err
	}
	// The unanimity flag must be backed by the signatures of all the
	// current signers.
	if !x.HasAllAddresses(ctx, h.auth, wallet.Signers) {
		return nil, nil, errors.Wrap(ErrNotAllSignersApproved, "missing signer signature")
	}
	return &msg, wallet, nil
}

// CreateProposalHandler creates a spend proposal. Only a signer of the
// wallet can create a proposal.
type CreateProposalHandler struct {
	auth      x.Authenticator
	wallets   *WalletBucket
	proposals *ProposalBucket
}

var _ quorum.Handler = CreateProposalHandler{}

func (h CreateProposalHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h CreateProposalHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, wallet, creator, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	proposal := &Proposal{
		WalletID:       msg.WalletID,
		ID:             wallet.ProposalCount,
		Creator:        creator,
		Destination:    msg.Destination,
		Amount:         msg.Amount,
		Asset:          msg.Asset,
		ExpirationTime: msg.ExpirationTime,
	}
	wallet.ProposalCount++

	if err := h.proposals.Insert(db, ProposalKey(proposal.WalletID, proposal.ID), proposal); err != nil {
		return nil, errors.Wrap(err, "cannot store proposal")
	}
	if err := h.wallets.Put(db, msg.WalletID, wallet); err != nil {
		return nil, errors.Wrap(err, "cannot store wallet")
	}
	return &quorum.DeliverResult{
		Data: encodeSequence(proposal.ID),
		Tags: proposalTags(proposal),
	}, nil
}

func (h CreateProposalHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*CreateProposalMsg, *Wallet, quorum.Address, error) {
	var msg CreateProposalMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	wallet, err := h.wallets.GetWallet(db, msg.WalletID)
	if err != nil {
		return nil, nil, nil, err
	}
	creator, err := authenticatedSigner(ctx, h.auth, wallet)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, wallet, creator, nil
}

// ApproveProposalHandler records the approval of every wallet signer that
// signed the transaction.
type ApproveProposalHandler struct {
	auth      x.Authenticator
	wallets   *WalletBucket
	proposals *ProposalBucket
	locks     *recordLocks
}

var _ quorum.Handler = ApproveProposalHandler{}

func (h ApproveProposalHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	var msg ApproveProposalMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	defer h.locks.Lock(ProposalKey(msg.WalletID, msg.ProposalID))()

	if _, _, err := h.validate(ctx, db, &msg); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h ApproveProposalHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	var msg ApproveProposalMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	defer h.locks.Lock(ProposalKey(msg.WalletID, msg.ProposalID))()

	proposal, signers, err := h.validate(ctx, db, &msg)
	if err != nil {
		return nil, err
	}
	before := len(proposal.Approvals)
	for _, s := range signers {
		proposal.Approve(s)
	}
	if len(proposal.Approvals) == before {
		return &quorum.DeliverResult{Log: "already approved"}, nil
	}
	if err := h.proposals.Save(db, proposal); err != nil {
		return nil, errors.Wrap(err, "cannot store proposal")
	}
	return &quorum.DeliverResult{Tags: proposalTags(proposal)}, nil
}

// validate returns the open proposal and every wallet signer that signed
// the approval.
func (h ApproveProposalHandler) validate(ctx quorum.Context, db quorum.KVStore, msg *ApproveProposalMsg) (*Proposal, []quorum.Address, error) {
	wallet, err := h.wallets.GetWallet(db, msg.WalletID)
	if err != nil {
		return nil, nil, err
	}
	signers := x.SignedBy(ctx, h.auth, wallet.Signers)
	if len(signers) == 0 {
		return nil, nil, errors.Wrap(ErrNotASigner, "no wallet signer signature")
	}
	proposal, err := h.proposals.GetProposal(db, msg.WalletID, msg.ProposalID)
	if err != nil {
		return nil, nil, err
	}
	now, err := quorum.BlockTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	if err := proposal.ensureOpen(now); err != nil {
		return nil, nil, err
	}
	return proposal, signers, nil
}

// ExecuteProposalHandler releases the funds of a proposal that has reached
// quorum. Any authenticated account may trigger the execution.
type ExecuteProposalHandler struct {
	auth      x.Authenticator
	wallets   *WalletBucket
	proposals *ProposalBucket
	locks     *recordLocks
	transfer  TransferService
}

var _ quorum.Handler = ExecuteProposalHandler{}

func (h ExecuteProposalHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	var msg ExecuteProposalMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	defer h.locks.Lock(ProposalKey(msg.WalletID, msg.ProposalID))()

	if _, _, err := h.validate(ctx, db, &msg); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h ExecuteProposalHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	var msg ExecuteProposalMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	defer h.locks.Lock(ProposalKey(msg.WalletID, msg.ProposalID))()

	wallet, proposal, err := h.validate(ctx, db, &msg)
	if err != nil {
		return nil, err
	}
	if err := h.execute(db, wallet, proposal); err != nil {
		return nil, err
	}

	quorum.GetLogger(ctx).Info("proposal executed",
		"wallet", quorum.Address(proposal.WalletID), "proposal", proposal.ID,
		"amount", proposal.Amount, "asset", proposal.Asset)
	return &quorum.DeliverResult{Tags: proposalTags(proposal)}, nil
}

// execute moves the funds and marks the proposal as executed as a single
// unit. When the store supports it, all writes go through a cache that is
// discarded on any failure.
func (h ExecuteProposalHandler) execute(db quorum.KVStore, wallet *Wallet, proposal *Proposal) error {
	var cache quorum.KVCacheWrap
	if cstore, ok := db.(quorum.CacheableKVStore); ok {
		cache = cstore.CacheWrap()
		db = cache
	}

	err := h.transfer.Transfer(db, wallet.Address, proposal.Destination, proposal.Amount, proposal.Asset)
	if err != nil {
		err = errors.Wrap(err, "transfer")
	} else {
		proposal.Executed = true
		if err = h.proposals.Save(db, proposal); err != nil {
			err = errors.Wrap(err, "cannot store proposal")
		}
	}

	if cache == nil {
		return err
	}
	if err != nil {
		cache.Discard()
		proposal.Executed = false
		return err
	}
	if err := cache.Write(); err != nil {
		proposal.Executed = false
		return errors.Wrap(err, "cannot commit execution")
	}
	return nil
}

func (h ExecuteProposalHandler) validate(ctx quorum.Context, db quorum.KVStore, msg *ExecuteProposalMsg) (*Wallet, *Proposal, error) {
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "execution must be signed")
	}
	wallet, err := h.wallets.GetWallet(db, msg.WalletID)
	if err != nil {
		return nil, nil, err
	}
	proposal, err := h.proposals.GetProposal(db, msg.WalletID, msg.ProposalID)
	if err != nil {
		return nil, nil, err
	}
	now, err := quorum.BlockTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	if err := proposal.ensureOpen(now); err != nil {
		return nil, nil, err
	}
	if !wallet.HasQuorum(proposal) {
		return nil, nil, errors.Wrapf(ErrInsufficientApprovals, "%d of %d approvals",
			wallet.CountApprovals(proposal), wallet.Threshold)
	}
	return wallet, proposal, nil
}

// CancelProposalHandler withdraws a proposal. Only the proposal creator can
// cancel it.
type CancelProposalHandler struct {
	auth      x.Authenticator
	proposals *ProposalBucket
	locks     *recordLocks
}

var _ quorum.Handler = CancelProposalHandler{}

func (h CancelProposalHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	var msg CancelProposalMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	defer h.locks.Lock(ProposalKey(msg.WalletID, msg.ProposalID))()

	if _, err := h.validate(ctx, db, &msg); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h CancelProposalHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	var msg CancelProposalMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	defer h.locks.Lock(ProposalKey(msg.WalletID, msg.ProposalID))()

	proposal, err := h.validate(ctx, db, &msg)
	if err != nil {
		return nil, err
	}
	proposal.Cancelled = true
	if err := h.proposals.Save(db, proposal); err != nil {
		return nil, errors.Wrap(err, "cannot store proposal")
	}
	return &quorum.DeliverResult{Tags: proposalTags(proposal)}, nil
}

func (h CancelProposalHandler) validate(ctx quorum.Context, db quorum.KVStore, msg *CancelProposalMsg) (*Proposal, error) {
	proposal, err := h.proposals.GetProposal(db, msg.WalletID, msg.ProposalID)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, proposal.Creator) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the creator can cancel")
	}
	switch {
	case proposal.Executed:
		return nil, errors.Wrapf(ErrProposalAlreadyExecuted, "proposal %d", proposal.ID)
	case proposal.Cancelled:
		return nil, errors.Wrapf(ErrProposalCancelled, "proposal %d", proposal.ID)
	}
	return proposal, nil
}

// authenticatedSigner returns the first wallet signer that signed the
// transaction.
func authenticatedSigner(ctx quorum.Context, auth x.Authenticator, wallet *Wallet) (quorum.Address, error) {
	signers := x.SignedBy(ctx, auth, wallet.Signers)
	if len(signers) == 0 {
		return nil, errors.Wrap(ErrNotASigner, "no wallet signer signature")
	}
	return signers[0], nil
}

func walletTag(id []byte) common.KVPair {
	return common.KVPair{
		Key:   []byte(tagWallet),
		Value: []byte(quorum.Address(id).String()),
	}
}

func proposalTags(p *Proposal) []common.KVPair {
	return []common.KVPair{
		walletTag(p.WalletID),
		{Key: []byte(tagProposal), Value: []byte(strconv.FormatUint(p.ID, 10))},
	}
}
