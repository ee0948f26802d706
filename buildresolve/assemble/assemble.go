// Package assemble implements the ResultAssembler (spec.md §4.7): the
// final, read-only view produced once the Resolver's queue has been
// drained and the sentinel seen. It never mutates anything it is handed;
// writing the result to persistent JSON is left to an external serializer.
package assemble

import (
	"sort"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
)

// Result is the immutable snapshot a Resolver run produces.
type Result struct {
	all               []*model.Build
	found             []*model.Build
	outputMap         map[model.BuildSystemKey]*model.Build
	foundChecksums    map[model.Checksum][]string
	notFoundChecksums map[model.Checksum][]string
}

// New builds a Result from the Resolver's live state. outputMap, found, and
// notFound are copied defensively; callers may keep mutating their own
// originals afterward without affecting the Result.
func New(outputMap map[model.BuildSystemKey]*model.Build, found, notFound map[model.Checksum][]string) *Result {
	all := make([]*model.Build, 0, len(outputMap))
	for _, b := range outputMap {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Info.ID < all[j].Info.ID })

	foundOnly := make([]*model.Build, 0, len(all))
	for _, b := range all {
		if b.Key == model.NotFoundKey {
			continue
		}
		foundOnly = append(foundOnly, b)
	}

	return &Result{
		all:               all,
		found:             foundOnly,
		outputMap:         copyOutputMap(outputMap),
		foundChecksums:    copyChecksumIndex(found),
		notFoundChecksums: copyChecksumIndex(notFound),
	}
}

// OutputMap returns every build in the run, keyed by (system, id),
// including the synthetic (NONE, 0) bucket.
func (r *Result) OutputMap() map[model.BuildSystemKey]*model.Build { return r.outputMap }

// AllBuilds returns every build in the run, the synthetic bucket included,
// sorted by numeric build id ascending (§4.7).
func (r *Result) AllBuilds() []*model.Build { return r.all }

// FoundBuilds is AllBuilds with the synthetic (NONE, 0) bucket excluded —
// the "builds found" list §4.7 names.
func (r *Result) FoundBuilds() []*model.Build { return r.found }

// FoundChecksums returns the checksum -> filenames index for content
// attributed to a real build.
func (r *Result) FoundChecksums() map[model.Checksum][]string { return r.foundChecksums }

// NotFoundChecksums returns the checksum -> filenames index for checksums
// no build resolved during the run.
func (r *Result) NotFoundChecksums() map[model.Checksum][]string { return r.notFoundChecksums }

func copyOutputMap(in map[model.BuildSystemKey]*model.Build) map[model.BuildSystemKey]*model.Build {
	out := make(map[model.BuildSystemKey]*model.Build, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyChecksumIndex(in map[model.Checksum][]string) map[model.Checksum][]string {
	out := make(map[model.Checksum][]string, len(in))
	for k, v := range in {
		filenames := make([]string, len(v))
		copy(filenames, v)
		out[k] = filenames
	}
	return out
}
