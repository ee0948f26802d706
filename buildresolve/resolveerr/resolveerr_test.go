package resolveerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogReturnsNilForNilErr(t *testing.T) {
	err := Catalog("listArchivesByChecksum", nil)

	assert.NoError(t, err)
}

func TestCatalogWrapsErrAsCatalogError(t *testing.T) {
	cause := errors.New("rpc timeout")

	err := Catalog("listArchivesByChecksum", cause)

	assert.True(t, Is(err, CatalogError))
	assert.False(t, Is(err, DataInconsistency))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "catalog error")
	assert.Contains(t, err.Error(), "listArchivesByChecksum")
	assert.Contains(t, err.Error(), "rpc timeout")
}

func TestInconsistentWrapsErrAsDataInconsistency(t *testing.T) {
	cause := errors.New("payloadhash mismatch")

	err := Inconsistent("assembleRpmBuilds", cause)

	assert.True(t, Is(err, DataInconsistency))
	assert.False(t, Is(err, CatalogError))
	assert.ErrorIs(t, err, cause)
}

func TestErrorStringWithoutWrappedErr(t *testing.T) {
	err := &Error{Kind: CatalogError, Op: "foo"}

	assert.Equal(t, "catalog error: foo", err.Error())
}

func TestIsReturnsFalseForPlainError(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), CatalogError))
}

func TestKindStringUnknown(t *testing.T) {
	assert.Equal(t, "unknown", Kind(99).String())
}
