/*
Package errors implements the error kinds used across quorum.

Root errors are declared with Register(code, description). The code is the
ABCI response code, which allows clients to distinguish error kinds. An
extension that needs its own kinds registers them in its own package using a
code range that no other package uses (x/multisig uses 1100 and above).

Runtime errors are created by wrapping a root error

	errors.Wrap(errors.ErrNotFound, "wallet")
	errors.Wrapf(errors.ErrInput, "threshold %d", n)

and tested with the Is method of the kind

	if errors.ErrNotFound.Is(err) { ... }

The first wrap attaches a stack trace. Use %+v to print it.

Validation of a message or a model usually returns several problems at
once. Use Field to describe an attribute error and Append or AppendField to
club them together.
*/
package errors
