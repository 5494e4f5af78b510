package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := ParseFailure("cannot parse file as CSV/TXT", stderrors.New("bare quote"))
	wrapped := Wrap(base, "ingest failed")

	assert.Equal(t, CodeParseFailure, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "ingest failed")
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	wrapped := Wrapf(stderrors.New("boom"), "step %d", 3)
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "step 3: boom", wrapped.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeUnsupportedFormat, stderrors.New("reading.xyz"))
	assert.Equal(t, CodeUnsupportedFormat, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}
