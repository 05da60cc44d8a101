/*
Package multisig implements shared-custody wallets.

A wallet is owned by a set of signers. Funds held by the wallet custody
account move only through proposals: any signer may propose a transfer,
signers approve it and once the number of approvals of the current signers
reaches the threshold, the proposal can be executed exactly once. Proposals
can expire or be cancelled by their creator. The signer set and threshold can
be replaced only with the consent of all current signers.
*/
package multisig
