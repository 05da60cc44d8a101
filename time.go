package quorum

import (
	"encoding/json"
	"time"

	"github.com/iov-one/quorum/errors"
)

// UnixTime is a moment in seconds since the epoch. Messages and models use
// it instead of time.Time so that every client encodes it the same way.
// The zero value means unset: a proposal without an expiration time has
// a zero ExpirationTime.
type UnixTime int64

func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// IsExpired reports whether t is set and now is past it. At exactly t the
// time has not expired yet.
func (t UnixTime) IsExpired(now time.Time) bool {
	return t != 0 && AsUnixTime(now) > t
}

func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrapf(errors.ErrState, "time %d before epoch", int64(t))
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().UTC().Format(time.RFC3339)
}

// UnmarshalJSON reads a number of seconds or an RFC 3339 string. Genesis
// files use the string form.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var v UnixTime
	var secs int64
	var stamp time.Time
	switch {
	case json.Unmarshal(raw, &secs) == nil:
		v = UnixTime(secs)
	case json.Unmarshal(raw, &stamp) == nil:
		v = AsUnixTime(stamp)
	default:
		return errors.Wrapf(errors.ErrInput, "time %s: want seconds or RFC 3339", raw)
	}
	if v < 0 {
		return errors.Wrapf(errors.ErrInput, "time %s before epoch", raw)
	}
	*t = v
	return nil
}
