// Package coin provides the amount types used by the balance ledger.
package coin
