package report

import (
	"testing"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/stretchr/testify/assert"
)

func TestBuildRowsMapsBuildFields(t *testing.T) {
	builds := []*model.Build{
		{
			Key:  model.BuildSystemKey{System: model.SystemKoji, ID: 42},
			Info: model.BuildInfo{Name: "foo", Version: "1.0"},
			Archives: []*model.LocalArchive{
				{Archive: &model.RemoteArchive{Filename: "a.jar"}},
			},
		},
	}

	rows := buildRows(builds)

	assert.Len(t, rows, 1)
	assert.Equal(t, "KOJI", rows[0].System)
	assert.Equal(t, "42", rows[0].ID)
	assert.Equal(t, "foo", rows[0].Name)
	assert.Equal(t, "1.0", rows[0].Version)
	assert.Equal(t, "1", rows[0].Archives)
}

func TestBuildRowsEmptyForNoBuilds(t *testing.T) {
	rows := buildRows(nil)

	assert.Empty(t, rows)
}
