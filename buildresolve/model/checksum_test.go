package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmptyDigest(t *testing.T) {
	assert.True(t, IsEmptyDigest(ChecksumMD5, "d41d8cd98f00b204e9800998ecf8427e"))
	assert.False(t, IsEmptyDigest(ChecksumMD5, "abc123"))
	assert.False(t, IsEmptyDigest(ChecksumType("unknown"), "d41d8cd98f00b204e9800998ecf8427e"))
}

func TestChecksumIsSentinel(t *testing.T) {
	assert.True(t, Checksum{Filename: "whatever"}.IsSentinel())
	assert.False(t, Checksum{Value: "abc"}.IsSentinel())
}
