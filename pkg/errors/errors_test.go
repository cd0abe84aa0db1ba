package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := New(ErrCodeValenceExceeded, "Carbon atom already has maximum bonds")
	assert.Equal(t, "[CHEM_003] Carbon atom already has maximum bonds", err.Error())

	err = err.WithDetail("atom=a1 total=5")
	assert.Equal(t, "[CHEM_003] Carbon atom already has maximum bonds: atom=a1 total=5", err.Error())
}

func TestAppError_WithDetailDoesNotMutateOriginal(t *testing.T) {
	base := New(ErrCodeSelfBond, "cannot bond an atom to itself")
	detailed := base.WithDetail("atom=a1")
	assert.Empty(t, base.Detail)
	assert.Equal(t, "atom=a1", detailed.Detail)
}

func TestAppError_NilReceiver(t *testing.T) {
	var e *AppError
	assert.Nil(t, e.WithDetail("x"))
	assert.Nil(t, e.WithCause(stderrors.New("boom")))
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, CodeDatabaseError, "failed to load molecule document")

	require.NotNil(t, err)
	assert.Equal(t, CodeDatabaseError, err.Code)
	assert.True(t, stderrors.Is(err, cause))
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.Nil(t, Wrap(nil, CodeInternal, "should be nil"))
}

func TestWrap_PreservesCodeWhenUnknown(t *testing.T) {
	inner := New(ErrCodeAromaticImmutable, "Cannot modify aromatic bonds")
	outer := Wrap(inner, CodeUnknown, "mutation rejected")
	assert.Equal(t, ErrCodeAromaticImmutable, outer.Code)
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeNotSameChain, "Nodes must be part of same chain to cyclize")
	wrapped := fmt.Errorf("apply: %w", inner)

	assert.True(t, IsCode(wrapped, ErrCodeNotSameChain))
	assert.False(t, IsCode(wrapped, ErrCodeValenceExceeded))
	assert.False(t, IsCode(nil, ErrCodeNotSameChain))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(New(ErrCodeAtomNotFound, "atom not in graph")))
	assert.True(t, IsNotFound(New(ErrCodeDocumentNotFound, "no such molecule")))
	assert.False(t, IsNotFound(New(ErrCodeValenceExceeded, "over valence")))
	assert.False(t, IsNotFound(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeDisconnected, GetCode(New(ErrCodeDisconnected, "fragmented")))
}

func TestErrorCode_Module(t *testing.T) {
	assert.Equal(t, "CHEM", ErrCodeValenceExceeded.Module())
	assert.Equal(t, "MUT", ErrCodeBondExists.Module())
	assert.Equal(t, "OK", CodeOK.Module())
}
