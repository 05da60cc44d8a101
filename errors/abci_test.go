package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"success": {
			wantCode: 0,
		},
		"typed nil": {
			err:      (*Error)(nil),
			wantCode: 0,
		},
		"wrapped kind": {
			err:      Wrap(Wrap(ErrNotFound, "wallet"), "load"),
			wantCode: ErrNotFound.ABCICode(),
			wantLog:  "load: wallet: not found",
		},
		"field errors of one kind": {
			err:      AppendField(AppendField(nil, "Creator", ErrInput), "Address", ErrInput),
			wantCode: ErrInput.ABCICode(),
			wantLog:  `2 errors: field "Creator": invalid input; field "Address": invalid input`,
		},
		"field errors of different kinds": {
			err:      AppendField(AppendField(nil, "Amount", ErrAmount), "Asset", ErrCurrency),
			wantCode: internalCode,
			wantLog:  internalLog,
		},
		"no kind is hidden": {
			err:      Wrap(io.EOF, "read genesis"),
			wantCode: internalCode,
			wantLog:  internalLog,
		},
		"no kind in debug mode": {
			err:      Wrap(io.EOF, "read genesis"),
			debug:    true,
			wantCode: internalCode,
			wantLog:  "read genesis: EOF",
		},
		"panic is hidden": {
			err:      Wrap(ErrPanic, "index out of range"),
			wantCode: internalCode,
			wantLog:  internalLog,
		},
		"panic in debug mode": {
			err:      Wrap(ErrPanic, "index out of range"),
			debug:    true,
			wantCode: ErrPanic.ABCICode(),
			wantLog:  "index out of range: panic",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantLog, log)
		})
	}
}
