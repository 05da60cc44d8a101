package quorum

import (
	"testing"

	"github.com/iov-one/quorum/errors"
)

type testMsg struct {
	Value string
}

func (testMsg) Path() string { return "test/msg" }

func (m *testMsg) Validate() error {
	if m.Value == "" {
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	return nil
}

type otherMsg struct{}

func (otherMsg) Path() string     { return "test/other" }
func (*otherMsg) Validate() error { return nil }

type testTx struct {
	msg Msg
	err error
}

func (tx testTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    interface{}
		wantErr *errors.Error
	}{
		"success": {
			tx:   testTx{msg: &testMsg{Value: "x"}},
			dest: &testMsg{},
		},
		"invalid message": {
			tx:      testTx{msg: &testMsg{}},
			dest:    &testMsg{},
			wantErr: errors.ErrEmpty,
		},
		"type mismatch": {
			tx:      testTx{msg: &otherMsg{}},
			dest:    &testMsg{},
			wantErr: errors.ErrType,
		},
		"no message": {
			tx:      testTx{},
			dest:    &testMsg{},
			wantErr: errors.ErrMsg,
		},
		"transaction error": {
			tx:      testTx{err: errors.ErrInput},
			dest:    &testMsg{},
			wantErr: errors.ErrInput,
		},
		"destination not a pointer": {
			tx:      testTx{msg: &testMsg{Value: "x"}},
			dest:    testMsg{},
			wantErr: errors.ErrHuman,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dest)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	if got := GetPath(testTx{msg: &testMsg{}}); got != "test/msg" {
		t.Fatalf("unexpected path %q", got)
	}
	if got := GetPath(testTx{}); got != "(missing)" {
		t.Fatalf("unexpected path %q", got)
	}
}
