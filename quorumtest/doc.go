/*
Package quorumtest provides mocks and helpers to test handlers, decorators
and other components that depend on the quorum interfaces.
*/
package quorumtest
