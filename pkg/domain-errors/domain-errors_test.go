package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: These are core error primitives used at every trust boundary.
// Unit tests ensure invariants like "wrapped domain errors preserve original code
// and field" and "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "mii entry not found"}
		s.Equal("mii entry not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeUpstream}
		s.Equal("upstream_error", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("connection refused")
		err := &Error{Code: CodeUpstream, Message: "render failed", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("works with errors.Unwrap", func() {
		inner := errors.New("root cause")
		err := &Error{Code: CodeInternal, Err: inner}
		s.Equal(inner, errors.Unwrap(err))
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeInvalidFormat, Field: "cmocEntryNo"}
		err2 := &Error{Code: CodeInvalidFormat, Field: "nnid"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := &Error{Code: CodeInternal}
		s.False(err1.Is(err2))
	})

	s.Run("does not match non-domain errors", func() {
		err1 := &Error{Code: CodeNotFound}
		s.False(err1.Is(errors.New("not found")))
	})
}

func (s *DomainErrorsSuite) TestWrapPreservesCodeAndField() {
	inner := NewField(CodeInvalidFormat, "file", "unsupported file")
	wrapped := Wrap(inner, CodeInternal, "upload rejected")

	s.True(HasCode(wrapped, CodeInvalidFormat), "wrapping must not change the original code")
	s.Equal("file", FieldOf(wrapped))
	s.True(errors.Is(wrapped, inner))
}

func (s *DomainErrorsSuite) TestFieldOf() {
	s.Run("returns empty for plain errors", func() {
		s.Equal("", FieldOf(errors.New("boom")))
	})

	s.Run("returns field through wrap chain", func() {
		err := NewField(CodeInvalidFormat, "pnid", "please enter a PNID")
		s.Equal("pnid", FieldOf(err))
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	err := New(CodeUpstream, "render.cgi returned 500")
	s.True(HasCode(err, CodeUpstream))
	s.False(HasCode(err, CodeNotFound))
	s.False(HasCode(nil, CodeUpstream))
}
