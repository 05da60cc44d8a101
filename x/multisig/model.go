package multisig

import (
	"encoding/binary"
	"time"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// MaxSigners is the maximum number of signers a wallet can have.
const MaxSigners = 10

var _ orm.Model = (*Wallet)(nil)

// Validate ensures the wallet is in a consistent state.
func (w *Wallet) Validate() error {
	if err := validateSigners(w.Signers, w.Threshold); err != nil {
		return err
	}
	var errs error
	errs = errors.AppendField(errs, "Creator", w.Creator.Validate())
	errs = errors.AppendField(errs, "Address", w.Address.Validate())
	return errs
}

// IsSigner returns true if the address is one of the current signers.
func (w *Wallet) IsSigner(addr quorum.Address) bool {
	for _, s := range w.Signers {
		if s.Equals(addr) {
			return true
		}
	}
	return false
}

// CountApprovals returns the number of proposal approvals given by the
// current signers. Approvals of removed signers are not counted.
func (w *Wallet) CountApprovals(p *Proposal) int {
	var n int
	for _, a := range p.Approvals {
		if w.IsSigner(a) {
			n++
		}
	}
	return n
}

// HasQuorum returns true if the proposal is approved by at least threshold
// current signers.
func (w *Wallet) HasQuorum(p *Proposal) bool {
	return w.CountApprovals(p) >= int(w.Threshold)
}

// validateSigners checks the signer set and threshold rules shared by wallet
// creation and update. Checks are done in order and only the first failure
// is returned.
func validateSigners(signers []quorum.Address, threshold uint32) error {
	if len(signers) > MaxSigners {
		return errors.Wrapf(ErrMaxSignersExceeded, "%d signers, max %d", len(signers), MaxSigners)
	}
	if len(signers) == 0 {
		return errors.Wrap(ErrInvalidThreshold, "no signers")
	}
	if threshold == 0 || int(threshold) > len(signers) {
		return errors.Wrapf(ErrInvalidThreshold, "threshold %d for %d signers", threshold, len(signers))
	}
	for i, s := range signers {
		if err := s.Validate(); err != nil {
			return errors.Field("Signers", err, "signer #%d", i)
		}
		for _, prev := range signers[:i] {
			if prev.Equals(s) {
				return errors.Field("Signers", errors.ErrDuplicate, "signer %s", s)
			}
		}
	}
	return nil
}

var _ orm.Model = (*Proposal)(nil)

// Validate ensures the proposal is in a consistent state.
func (p *Proposal) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "WalletID", validateWalletID(p.WalletID))
	errs = errors.AppendField(errs, "Creator", p.Creator.Validate())
	errs = errors.AppendField(errs, "Destination", p.Destination.Validate())
	errs = errors.AppendField(errs, "Amount", validateAmount(p.Amount))
	errs = errors.AppendField(errs, "Asset", validateAsset(p.Asset))
	errs = errors.AppendField(errs, "ExpirationTime", p.ExpirationTime.Validate())
	for i, a := range p.Approvals {
		if err := a.Validate(); err != nil {
			errs = errors.AppendField(errs, "Approvals", errors.Wrapf(err, "approval #%d", i))
		}
		for _, prev := range p.Approvals[:i] {
			if prev.Equals(a) {
				errs = errors.AppendField(errs, "Approvals", errors.Wrapf(errors.ErrDuplicate, "approval %s", a))
			}
		}
	}
	if p.Executed && p.Cancelled {
		errs = errors.Append(errs, errors.Wrap(errors.ErrState, "executed and cancelled"))
	}
	return errs
}

// HasApproved returns true if the address approved the proposal.
func (p *Proposal) HasApproved(addr quorum.Address) bool {
	for _, a := range p.Approvals {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

// Approve records the approval of the address. It is a no-op if the address
// has already approved.
func (p *Proposal) Approve(addr quorum.Address) {
	if !p.HasApproved(addr) {
		p.Approvals = append(p.Approvals, addr)
	}
}

// IsExpired returns true if the proposal has an expiration time and the
// given time is after it.
func (p *Proposal) IsExpired(now time.Time) bool {
	return p.ExpirationTime.IsExpired(now)
}

// ensureOpen returns an error if the proposal can no longer be approved or
// executed at the given time.
func (p *Proposal) ensureOpen(now time.Time) error {
	switch {
	case p.Executed:
		return errors.Wrapf(ErrProposalAlreadyExecuted, "proposal %d", p.ID)
	case p.Cancelled:
		return errors.Wrapf(ErrProposalCancelled, "proposal %d", p.ID)
	case p.IsExpired(now):
		return errors.Wrapf(ErrProposalExpired, "proposal %d expired at %s", p.ID, p.ExpirationTime)
	}
	return nil
}

func validateWalletID(id []byte) error {
	if len(id) != quorum.AddressLength {
		return errors.Wrapf(errors.ErrInput, "wallet id %X", id)
	}
	return nil
}

// validateAmount accepts what a single coin can hold.
func validateAmount(amount uint64) error {
	switch {
	case amount == 0:
		return errors.Wrap(errors.ErrAmount, "zero")
	case amount > coin.MaxAmount:
		return errors.Wrapf(errors.ErrAmount, "%d above %d", amount, coin.MaxAmount)
	}
	return nil
}

func validateAsset(asset string) error {
	if asset != "" && !coin.IsCC(asset) {
		return errors.Wrapf(errors.ErrCurrency, "asset %q", asset)
	}
	return nil
}

// WalletID returns the identifier of the wallet created by the creator with
// the given nonce.
func WalletID(creator quorum.Address, nonce uint64) []byte {
	data := make([]byte, 0, len(creator)+8)
	data = append(data, creator...)
	data = append(data, encodeSequence(nonce)...)
	return quorum.NewCondition("multisig", "wallet", data).Address()
}

// CustodyCondition returns the condition that controls the wallet funds.
func CustodyCondition(walletID []byte) quorum.Condition {
	return quorum.NewCondition("multisig", "custody", walletID)
}

// ProposalKey returns the storage key of a wallet proposal.
func ProposalKey(walletID []byte, proposalID uint64) []byte {
	key := make([]byte, 0, len(walletID)+8)
	key = append(key, walletID...)
	return append(key, encodeSequence(proposalID)...)
}

func encodeSequence(n uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	return raw
}

// WalletBucket stores wallets under their identifier.
type WalletBucket struct {
	orm.ModelBucket
}

// NewWalletBucket returns a bucket for storing wallets.
func NewWalletBucket() *WalletBucket {
	return &WalletBucket{
		ModelBucket: orm.NewModelBucket("wallet", &Wallet{}),
	}
}

// GetWallet loads the wallet with the given identifier.
func (b *WalletBucket) GetWallet(db quorum.ReadOnlyKVStore, id []byte) (*Wallet, error) {
	var w Wallet
	if err := b.One(db, id, &w); err != nil {
		return nil, errors.Wrap(err, "wallet")
	}
	return &w, nil
}

// ProposalBucket stores proposals under the wallet identifier followed by
// the proposal sequence.
type ProposalBucket struct {
	orm.ModelBucket
}

// NewProposalBucket returns a bucket for storing proposals.
func NewProposalBucket() *ProposalBucket {
	return &ProposalBucket{
		ModelBucket: orm.NewModelBucket("proposal", &Proposal{}),
	}
}

// GetProposal loads a single proposal of a wallet.
func (b *ProposalBucket) GetProposal(db quorum.ReadOnlyKVStore, walletID []byte, id uint64) (*Proposal, error) {
	var p Proposal
	if err := b.One(db, ProposalKey(walletID, id), &p); err != nil {
		return nil, errors.Wrap(err, "proposal")
	}
	return &p, nil
}

// Save stores the proposal under its canonical key.
func (b *ProposalBucket) Save(db quorum.KVStore, p *Proposal) error {
	return b.Put(db, ProposalKey(p.WalletID, p.ID), p)
}

// Query serves "/proposals". A prefix query takes a wallet id and lists
// the proposals of that wallet ordered by their id.
func (b *ProposalBucket) Query(db quorum.ReadOnlyKVStore, mod string, data []byte) ([]quorum.Model, error) {
	if mod == quorum.PrefixQueryMod {
		if err := validateWalletID(data); err != nil {
			return nil, err
		}
	}
	return b.ModelBucket.Query(db, mod, data)
}
