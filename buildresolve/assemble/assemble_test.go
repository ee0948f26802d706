package assemble

import (
	"testing"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/stretchr/testify/assert"
)

func TestNewSortsByBuildIDAscending(t *testing.T) {
	outputMap := map[model.BuildSystemKey]*model.Build{
		model.NotFoundKey: model.NewSyntheticBuild(),
		{System: model.SystemKoji, ID: 42}:  {Key: model.BuildSystemKey{System: model.SystemKoji, ID: 42}, Info: model.BuildInfo{ID: 42}},
		{System: model.SystemKoji, ID: 7}:   {Key: model.BuildSystemKey{System: model.SystemKoji, ID: 7}, Info: model.BuildInfo{ID: 7}},
		{System: model.SystemPnc, ID: 100}:  {Key: model.BuildSystemKey{System: model.SystemPnc, ID: 100}, Info: model.BuildInfo{ID: 100}},
	}

	result := New(outputMap, nil, nil)

	ids := make([]int, len(result.AllBuilds()))
	for i, b := range result.AllBuilds() {
		ids[i] = b.Info.ID
	}
	assert.Equal(t, []int{0, 7, 42, 100}, ids)
}

func TestFoundBuildsExcludesSyntheticBucket(t *testing.T) {
	outputMap := map[model.BuildSystemKey]*model.Build{
		model.NotFoundKey: model.NewSyntheticBuild(),
		{System: model.SystemKoji, ID: 7}: {Key: model.BuildSystemKey{System: model.SystemKoji, ID: 7}, Info: model.BuildInfo{ID: 7}},
	}

	result := New(outputMap, nil, nil)

	assert.Len(t, result.AllBuilds(), 2)
	assert.Len(t, result.FoundBuilds(), 1)
	assert.Equal(t, 7, result.FoundBuilds()[0].Info.ID)
}

func TestChecksumIndexesAreDefensiveCopies(t *testing.T) {
	outputMap := map[model.BuildSystemKey]*model.Build{model.NotFoundKey: model.NewSyntheticBuild()}
	found := map[model.Checksum][]string{
		{Type: model.ChecksumMD5, Value: "abc"}: {"a.jar"},
	}
	notFound := map[model.Checksum][]string{
		{Type: model.ChecksumMD5, Value: "def"}: {"b.jar"},
	}

	result := New(outputMap, found, notFound)

	found[model.Checksum{Type: model.ChecksumMD5, Value: "abc"}][0] = "mutated"
	assert.Equal(t, "a.jar", result.FoundChecksums()[model.Checksum{Type: model.ChecksumMD5, Value: "abc"}][0])
	assert.Equal(t, []string{"b.jar"}, result.NotFoundChecksums()[model.Checksum{Type: model.ChecksumMD5, Value: "def"}])
}

func TestOutputMapIncludesSyntheticBucket(t *testing.T) {
	outputMap := map[model.BuildSystemKey]*model.Build{model.NotFoundKey: model.NewSyntheticBuild()}

	result := New(outputMap, nil, nil)

	b, ok := result.OutputMap()[model.NotFoundKey]
	assert.True(t, ok)
	assert.Equal(t, "not found", b.Info.Name)
}
