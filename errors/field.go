package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Field attributes err to a field of a message or model, for example
// "Signers" or "Approvals". Nil stays nil.
func Field(name string, err error, desc string, args ...interface{}) error {
	if isNil(err) {
		return nil
	}
	if !hasStack(err) {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		desc = fmt.Sprintf(desc, args...)
	}
	return &fieldError{field: name, desc: desc, cause: err}
}

// AppendField adds the error of a field to errs.
//
//   var errs error
//   errs = errors.AppendField(errs, "Creator", w.Creator.Validate())
//   errs = errors.AppendField(errs, "Address", w.Address.Validate())
//   return errs
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	field string
	desc  string
	cause error
}

func (f *fieldError) Error() string {
	if f.desc == "" {
		return fmt.Sprintf("field %q: %s", f.field, f.cause)
	}
	return fmt.Sprintf("field %q: %s: %s", f.field, f.desc, f.cause)
}

func (f *fieldError) Cause() error {
	return f.cause
}

// Append groups errors and skips nils. It returns nil when nothing is
// left and the error itself when only one is.
func Append(errs ...error) error {
	var all []error
	for _, e := range errs {
		if isNil(e) {
			continue
		}
		if g, ok := e.(*group); ok {
			all = append(all, g.errs...)
		} else {
			all = append(all, e)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return &group{errs: all}
}

type group struct {
	errs []error
}

func (g *group) Error() string {
	msgs := make([]string, len(g.errs))
	for i, e := range g.errs {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d errors: %s", len(g.errs), strings.Join(msgs, "; "))
}

func (g *group) Unpack() []error {
	return g.errs
}

// ABCICode is the code shared by all errors of the group, or the
// internal code when they differ.
func (g *group) ABCICode() uint32 {
	code := abciCode(g.errs[0])
	for _, e := range g.errs[1:] {
		if abciCode(e) != code {
			return internalCode
		}
	}
	return code
}
