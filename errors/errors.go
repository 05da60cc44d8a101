package errors

import (
	"fmt"
	"io"
	"reflect"

	"github.com/pkg/errors"
)

// Shared kinds. Extensions register their own codes, x/multisig uses the
// 1100 range.
var (
	ErrUnauthorized       = Register(2, "unauthorized")
	ErrNotFound           = Register(3, "not found")
	ErrMsg                = Register(4, "invalid message")
	ErrModel              = Register(5, "invalid model")
	ErrDuplicate          = Register(6, "duplicate")
	ErrHuman              = Register(7, "coding error")
	ErrImmutable          = Register(8, "cannot be modified")
	ErrEmpty              = Register(9, "value is empty")
	ErrState              = Register(10, "invalid state")
	ErrType               = Register(11, "invalid type")
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrAmount             = Register(13, "invalid amount")
	ErrInput              = Register(14, "invalid input")
	ErrExpired            = Register(15, "expired")
	ErrOverflow           = Register(16, "overflow")
	ErrCurrency           = Register(17, "currency")
	ErrDatabase           = Register(18, "database")
	ErrIteratorDone       = Register(19, "iterator done")

	// ErrPanic marks a recovered panic. Its message is never sent to
	// clients outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// kinds keeps codes unique. Code 1 is reported for errors of no kind.
var kinds = map[uint32]*Error{
	internalCode: {code: internalCode, desc: "internal"},
}

// Register declares a kind. It panics when the code is taken and is meant
// for package level declarations.
func Register(code uint32, desc string) *Error {
	if prev, ok := kinds[code]; ok {
		panic(fmt.Sprintf("error code %d already taken by %q", code, prev.desc))
	}
	e := &Error{code: code, desc: desc}
	kinds[code] = e
	return e
}

// Error is a kind of failure. Errors created at runtime wrap a kind and
// its code is returned to the client as the ABCI response code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// Is reports whether err is of kind e, directly, wrapped or as one of a
// group created by Append. The nil kind matches nil errors only.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNil(err)
	}
	for err != nil {
		if k, ok := err.(*Error); ok && k == e {
			return true
		}
		switch x := err.(type) {
		case grouper:
			for _, inner := range x.Unpack() {
				if e.Is(inner) {
					return true
				}
			}
			return false
		case causer:
			err = x.Cause()
		default:
			return false
		}
	}
	return false
}

// isNil also recognizes typed nil pointers.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Wrap describes err further and returns nil for a nil err. The first wrap
// records a stack trace, printed with %+v.
func Wrap(err error, desc string) error {
	if err == nil {
		return nil
	}
	if !hasStack(err) {
		err = errors.WithStack(err)
	}
	return &wrapped{msg: desc, cause: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrapped struct {
	msg   string
	cause error
}

func (w *wrapped) Error() string {
	return w.msg + ": " + w.cause.Error()
}

func (w *wrapped) Cause() error {
	return w.cause
}

func (w *wrapped) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", w.msg, w.cause)
		return
	}
	io.WriteString(s, w.Error())
}

// Recover turns a panic into an ErrPanic assigned to *err. Use with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

type grouper interface {
	Unpack() []error
}

func hasStack(err error) bool {
	for err != nil {
		if _, ok := err.(interface{ StackTrace() errors.StackTrace }); ok {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}
