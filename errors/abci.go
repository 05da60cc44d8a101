package errors

const (
	internalCode uint32 = 1
	internalLog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for err. Outside
// of debug mode, errors of no kind and recovered panics are reported as
// code 1 with a generic message.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNil(err) {
		return 0, ""
	}
	code := abciCode(err)
	if !debug && (code == internalCode || ErrPanic.Is(err)) {
		return internalCode, internalLog
	}
	return code, err.Error()
}

type coder interface {
	ABCICode() uint32
}

func abciCode(err error) uint32 {
	for {
		switch x := err.(type) {
		case coder:
			return x.ABCICode()
		case causer:
			err = x.Cause()
		default:
			return internalCode
		}
	}
}
