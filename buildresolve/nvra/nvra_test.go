package nvra

import (
	"testing"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/stretchr/testify/assert"
)

func TestParseStandardFilename(t *testing.T) {
	result, err := Parse("httpd-2.4.6-97.el7.x86_64.rpm")

	assert.NoError(t, err)
	assert.Equal(t, model.NVRA{Name: "httpd", Version: "2.4.6", Release: "97.el7", Arch: "x86_64"}, result)
}

func TestParseStripsNestedArchivePrefix(t *testing.T) {
	result, err := Parse("outer.zip!/path/httpd-2.4.6-97.el7.x86_64.rpm")

	assert.NoError(t, err)
	assert.Equal(t, "httpd", result.Name)
}

func TestParseStripsDirectoryPrefix(t *testing.T) {
	result, err := Parse("/repo/Packages/httpd-2.4.6-97.el7.x86_64.rpm")

	assert.NoError(t, err)
	assert.Equal(t, "httpd", result.Name)
	assert.Equal(t, "x86_64", result.Arch)
}

func TestParseRejectsNonRpmFilename(t *testing.T) {
	_, err := Parse("foo.txt")

	assert.Error(t, err)
}

func TestParseRejectsMissingArchitecture(t *testing.T) {
	_, err := Parse("foo.rpm")

	assert.Error(t, err)
}

func TestParseRejectsMissingRelease(t *testing.T) {
	_, err := Parse("foo.x86_64.rpm")

	assert.Error(t, err)
}

func TestParseRejectsMissingVersion(t *testing.T) {
	_, err := Parse("foo-1.x86_64.rpm")

	assert.Error(t, err)
}
