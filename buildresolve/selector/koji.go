// Package selector implements CandidateSelector (spec.md §4.4): choosing
// the single "best" build when several builds claim the same content, for
// both the KOJI and PNC candidate shapes.
package selector

import (
	"fmt"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

// Candidate pairs a fully-populated candidate Build (not yet necessarily in
// the output map) with the RemoteArchives that matched it for this
// checksum query.
type Candidate struct {
	Build    *model.Build
	Archives []*model.RemoteArchive
}

// InOutputMap looks up a build already promoted to the Resolver's output
// map by id, returning it and true if present.
type InOutputMap func(id int) (*model.Build, bool)

// SelectKoji implements the three-tier selection policy of §4.4. candidates
// must be sorted by Build id ascending, as the Resolver's caller already
// guarantees. The returned Build is the one to attach chosenArchives to;
// when rule 1 fires, it is the build already resident in the output map
// (its identity must be preserved, not a fresh copy).
func SelectKoji(candidates []Candidate, inOutput InOutputMap) (*model.Build, []*model.RemoteArchive) {
	if len(candidates) == 0 {
		return nil, nil
	}

	if winner, ok := selectCachedWinner(candidates, inOutput); ok {
		return winner.build, winner.archives
	}

	if winner, ok := selectCompleteWinner(candidates); ok {
		return winner.Build, winner.Archives
	}

	last := candidates[len(candidates)-1]
	log.Warn(fmt.Sprintf("build-resolver: no COMPLETE candidate among %d builds, falling back to highest id %d", len(candidates), last.Build.Info.ID))
	return last.Build, last.Archives
}

type cachedWinner struct {
	build    *model.Build
	archives []*model.RemoteArchive
}

func selectCachedWinner(candidates []Candidate, inOutput InOutputMap) (cachedWinner, bool) {
	var winnerID = -1
	for _, c := range candidates {
		if _, ok := inOutput(c.Build.Info.ID); ok {
			winnerID = c.Build.Info.ID // candidates ascending: last match wins
		}
	}
	if winnerID < 0 {
		return cachedWinner{}, false
	}
	winnerBuild, _ := inOutput(winnerID)
	var winnerArchives []*model.RemoteArchive
	for _, c := range candidates {
		if c.Build.Info.ID == winnerID {
			winnerArchives = c.Archives
			continue
		}
		// §4.4 rule 1: duplicates belong on their own (non-selected) build,
		// not the winner's. They are recorded on c.Build, the candidate
		// record passed in; the resolver builds those records afresh for
		// each query and promotes builds from the cache, so this record is
		// not carried into the output map.
		c.Build.DuplicateArchives = append(c.Build.DuplicateArchives, c.Archives...)
	}
	return cachedWinner{build: winnerBuild, archives: winnerArchives}, true
}

func selectCompleteWinner(candidates []Candidate) (Candidate, bool) {
	var complete []Candidate
	for _, c := range candidates {
		if c.Build.Info.State == model.StateComplete {
			complete = append(complete, c)
		}
	}
	if len(complete) == 0 {
		return Candidate{}, false
	}

	var taggedNonImport []Candidate
	for _, c := range complete {
		if len(c.Build.Tags) > 0 && !c.Build.Info.IsImport {
			taggedNonImport = append(taggedNonImport, c)
		}
	}
	if len(taggedNonImport) > 0 {
		return taggedNonImport[len(taggedNonImport)-1], true
	}

	var tagged []Candidate
	for _, c := range complete {
		if len(c.Build.Tags) > 0 {
			tagged = append(tagged, c)
		}
	}
	if len(tagged) > 0 {
		return tagged[len(tagged)-1], true
	}

	return complete[len(complete)-1], true
}
