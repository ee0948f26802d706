package notfound

import (
	"testing"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/stretchr/testify/assert"
)

func TestNewBucketIsSyntheticZero(t *testing.T) {
	tracker := New()

	bucket := tracker.Bucket()
	assert.Equal(t, model.NotFoundKey, bucket.Key)
	assert.Equal(t, "not found", bucket.Info.Name)
	assert.Empty(t, bucket.Archives)
}

func TestAddWithoutBuildCreatesNegativeArchiveID(t *testing.T) {
	tracker := New()
	checksum := model.Checksum{Type: model.ChecksumMD5, Value: "abc", Filename: "a.jar"}

	tracker.AddWithoutBuild(checksum, []string{"a.jar"})

	archives := tracker.Bucket().Archives
	assert.Len(t, archives, 1)
	assert.Equal(t, -1, archives[0].ID())
	assert.Equal(t, []string{"a.jar"}, archives[0].Filenames)
}

func TestAddWithoutBuildUnionsFilenamesForSameChecksum(t *testing.T) {
	tracker := New()
	checksum := model.Checksum{Type: model.ChecksumMD5, Value: "abc", Filename: "a.jar"}

	tracker.AddWithoutBuild(checksum, []string{"a.jar"})
	tracker.AddWithoutBuild(checksum, []string{"a-copy.jar"})

	archives := tracker.Bucket().Archives
	assert.Len(t, archives, 1)
	assert.Equal(t, []string{"a-copy.jar", "a.jar"}, archives[0].Filenames)
}

func TestAddWithoutBuildAssignsDistinctNegativeIDs(t *testing.T) {
	tracker := New()
	first := model.Checksum{Type: model.ChecksumMD5, Value: "a", Filename: "a.jar"}
	second := model.Checksum{Type: model.ChecksumMD5, Value: "b", Filename: "b.jar"}

	tracker.AddWithoutBuild(first, []string{"a.jar"})
	tracker.AddWithoutBuild(second, []string{"b.jar"})

	archives := tracker.Bucket().Archives
	assert.Len(t, archives, 2)
	assert.Equal(t, -1, archives[0].ID())
	assert.Equal(t, -2, archives[1].ID())
}

func TestPromoteRemovesMatchingArchive(t *testing.T) {
	tracker := New()
	checksum := model.Checksum{Type: model.ChecksumMD5, Value: "a", Filename: "a.jar"}
	other := model.Checksum{Type: model.ChecksumMD5, Value: "b", Filename: "b.jar"}
	tracker.AddWithoutBuild(checksum, []string{"a.jar"})
	tracker.AddWithoutBuild(other, []string{"b.jar"})

	tracker.Promote(checksum)

	archives := tracker.Bucket().Archives
	assert.Len(t, archives, 1)
	assert.Contains(t, archives[0].Filenames, "b.jar")
}

func TestResolveParentFindsEnclosingArchive(t *testing.T) {
	parentArchive := &model.LocalArchive{
		Archive:   &model.RemoteArchive{ArchiveID: 1, Filename: "outer.zip"},
		Filenames: []string{"outer.zip"},
		Checksums: map[model.Checksum]struct{}{},
	}
	parentBuild := &model.Build{
		Key:      model.BuildSystemKey{System: model.SystemKoji, ID: 1},
		Archives: []*model.LocalArchive{parentArchive},
	}
	outputMap := map[model.BuildSystemKey]*model.Build{
		parentBuild.Key: parentBuild,
	}
	parentArchive.UnmatchedFilenames = map[string]struct{}{}

	parent, found := ResolveParent(outputMap, "outer.zip!/inner/inner.class")

	assert.True(t, found)
	assert.Equal(t, "outer.zip", parent)
	_, ok := parentArchive.UnmatchedFilenames["outer.zip!/inner/inner.class"]
	assert.True(t, ok)
}

func TestResolveParentReturnsFalseWhenNoEnclosingArchiveExists(t *testing.T) {
	outputMap := map[model.BuildSystemKey]*model.Build{}

	_, found := ResolveParent(outputMap, "outer.zip!/inner/inner.class")

	assert.False(t, found)
}

func TestSweepDropsFilenamesWithResolvedParent(t *testing.T) {
	parentArchive := &model.LocalArchive{
		Archive:            &model.RemoteArchive{ArchiveID: 1, Filename: "outer.zip"},
		Filenames:          []string{"outer.zip"},
		UnmatchedFilenames: map[string]struct{}{},
		Checksums:          map[model.Checksum]struct{}{},
	}
	parentBuild := &model.Build{
		Key:      model.BuildSystemKey{System: model.SystemKoji, ID: 1},
		Archives: []*model.LocalArchive{parentArchive},
	}
	outputMap := map[model.BuildSystemKey]*model.Build{parentBuild.Key: parentBuild}

	tracker := New()
	nestedChecksum := model.Checksum{Type: model.ChecksumMD5, Value: "n", Filename: "outer.zip!/inner.class"}
	standaloneChecksum := model.Checksum{Type: model.ChecksumMD5, Value: "s", Filename: "standalone.jar"}
	tracker.AddWithoutBuild(nestedChecksum, []string{"outer.zip!/inner.class"})
	tracker.AddWithoutBuild(standaloneChecksum, []string{"standalone.jar"})

	tracker.Sweep(outputMap)

	archives := tracker.Bucket().Archives
	assert.Len(t, archives, 1)
	assert.Equal(t, []string{"standalone.jar"}, archives[0].Filenames)
	_, ok := parentArchive.UnmatchedFilenames["outer.zip!/inner.class"]
	assert.True(t, ok)
}
