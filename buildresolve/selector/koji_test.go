package selector

import (
	"testing"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/stretchr/testify/assert"
)

func noBuildInOutputMap(id int) (*model.Build, bool) { return nil, false }

func buildCandidate(id int, state model.BuildState, tagged, isImport bool) Candidate {
	var tags []model.Tag
	if tagged {
		tags = []model.Tag{{Name: "release"}}
	}
	return Candidate{
		Build: &model.Build{
			Key:  model.BuildSystemKey{System: model.SystemKoji, ID: id},
			Info: model.BuildInfo{ID: id, State: state, IsImport: isImport},
			Tags: tags,
		},
		Archives: []*model.RemoteArchive{{ArchiveID: id * 10, BuildID: id}},
	}
}

func TestSelectKojiEmptyCandidatesReturnsNil(t *testing.T) {
	build, archives := SelectKoji(nil, noBuildInOutputMap)

	assert.Nil(t, build)
	assert.Nil(t, archives)
}

func TestSelectKojiPrefersAlreadyCachedWinner(t *testing.T) {
	cached := &model.Build{Key: model.BuildSystemKey{System: model.SystemKoji, ID: 7}, Info: model.BuildInfo{ID: 7}}
	inOutput := func(id int) (*model.Build, bool) {
		if id == 7 {
			return cached, true
		}
		return nil, false
	}
	loser := buildCandidate(5, model.StateComplete, true, false)
	candidates := []Candidate{
		loser,
		buildCandidate(7, model.StateBuilding, false, false),
	}

	winner, archives := SelectKoji(candidates, inOutput)

	assert.Same(t, cached, winner)
	assert.Len(t, archives, 1)
	assert.Equal(t, 70, archives[0].ArchiveID)
	assert.Empty(t, cached.DuplicateArchives)
	assert.Len(t, loser.Build.DuplicateArchives, 1)
	assert.Equal(t, 50, loser.Build.DuplicateArchives[0].ArchiveID)
}

func TestSelectKojiPrefersCompleteTaggedNonImportOverComplete(t *testing.T) {
	candidates := []Candidate{
		buildCandidate(1, model.StateComplete, false, false),
		buildCandidate(2, model.StateComplete, true, false),
		buildCandidate(3, model.StateComplete, true, true),
	}

	winner, _ := SelectKoji(candidates, noBuildInOutputMap)

	assert.Equal(t, 2, winner.Info.ID)
}

func TestSelectKojiFallsBackToTaggedWhenAllImports(t *testing.T) {
	candidates := []Candidate{
		buildCandidate(1, model.StateComplete, false, true),
		buildCandidate(2, model.StateComplete, true, true),
	}

	winner, _ := SelectKoji(candidates, noBuildInOutputMap)

	assert.Equal(t, 2, winner.Info.ID)
}

func TestSelectKojiFallsBackToLastCompleteWhenNoneTagged(t *testing.T) {
	candidates := []Candidate{
		buildCandidate(1, model.StateComplete, false, false),
		buildCandidate(2, model.StateComplete, false, false),
	}

	winner, _ := SelectKoji(candidates, noBuildInOutputMap)

	assert.Equal(t, 2, winner.Info.ID)
}

func TestSelectKojiFallsBackToHighestIDWhenNoneComplete(t *testing.T) {
	candidates := []Candidate{
		buildCandidate(1, model.StateBuilding, false, false),
		buildCandidate(2, model.StateFailed, false, false),
	}

	winner, _ := SelectKoji(candidates, noBuildInOutputMap)

	assert.Equal(t, 2, winner.Info.ID)
}
