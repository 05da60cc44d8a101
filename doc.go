/*
Package quorum defines the interfaces used throughout the application, such
as storage, transactions, handlers and queries. It also contains the helpers
to work with conditions and addresses, the request context and abci results.

Extensions live in the x/ directory. The multisig extension in x/multisig
implements shared custody wallets with a proposal and approval lifecycle.
*/
package quorum
