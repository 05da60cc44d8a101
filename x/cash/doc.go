/*
Package cash defines a simple balance ledger.

There is no logic in the coins, except that the balance of any coin may not
go below zero. The ledger is used to fund accounts and to release funds held
in custody by multisig wallets.
*/
package cash
