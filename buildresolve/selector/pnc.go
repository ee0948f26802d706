package selector

import "github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"

// SelectPnc picks the single best PncArtifact from a checksum's match list,
// by greatest quality score, tie-broken by "has at least one build record
// id", else the first in the list (§4.4).
func SelectPnc(artifacts []model.PncArtifact) (model.PncArtifact, bool) {
	if len(artifacts) == 0 {
		return model.PncArtifact{}, false
	}
	best := artifacts[0]
	for _, a := range artifacts[1:] {
		switch {
		case a.Quality.Score() > best.Quality.Score():
			best = a
		case a.Quality.Score() == best.Quality.Score() && !best.HasBuildRecord() && a.HasBuildRecord():
			best = a
		}
	}
	return best, true
}
