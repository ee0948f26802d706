package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNVRAString(t *testing.T) {
	n := NVRA{Name: "httpd", Version: "2.4.6", Release: "97.el7", Arch: "x86_64"}

	assert.Equal(t, "httpd-2.4.6-97.el7.x86_64", n.String())
}
