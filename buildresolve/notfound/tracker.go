// Package notfound implements NotFoundTracker (spec.md §4.5): the
// synthetic (NONE, 0) build that collects unresolved content, and the
// nested-archive parent-attribution logic that lets a "not found" nested
// entry be folded into its enclosing, resolved archive.
package notfound

import (
	"strings"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
)

const nestedSeparator = "!/"

// Tracker owns the bucket-0 Build.
type Tracker struct {
	bucket *model.Build
}

// New creates a Tracker with a freshly-initialized bucket-0 build.
func New() *Tracker {
	return &Tracker{bucket: model.NewSyntheticBuild()}
}

// Bucket returns the (NONE, 0) Build this tracker owns.
func (t *Tracker) Bucket() *model.Build { return t.bucket }

// AddWithoutBuild records filenames under checksum in bucket 0. If a
// LocalArchive already tracks this checksum, its filenames are extended;
// otherwise a new synthetic archive is created with a strictly negative id
// (§4.5, §6).
func (t *Tracker) AddWithoutBuild(checksum model.Checksum, filenames []string) {
	for _, a := range t.bucket.Archives {
		if _, ok := a.Checksums[checksum]; ok {
			for _, f := range filenames {
				a.AddFilename(f)
			}
			return
		}
	}
	archive := &model.LocalArchive{
		Archive: &model.RemoteArchive{
			ArchiveID: -(len(t.bucket.Archives) + 1),
			BuildID:   0,
			Filename:  "not found",
		},
		Checksums:          map[model.Checksum]struct{}{checksum: {}},
		UnmatchedFilenames: map[string]struct{}{},
	}
	for _, f := range filenames {
		archive.AddFilename(f)
	}
	t.bucket.Archives = append(t.bucket.Archives, archive)
}

// Promote removes every LocalArchive in bucket 0 whose checksums include
// checksum. Called after any successful resolution of that checksum
// (§4.5).
func (t *Tracker) Promote(checksum model.Checksum) {
	kept := t.bucket.Archives[:0:0]
	for _, a := range t.bucket.Archives {
		if _, ok := a.Checksums[checksum]; ok {
			continue
		}
		kept = append(kept, a)
	}
	t.bucket.Archives = kept
}

// ResolveParent walks filename's "outer!/inner" nesting upward, searching
// outputMap for an enclosing archive. When found, filename is recorded in
// that archive's UnmatchedFilenames and the parent filename is returned.
// Returns "", false when no enclosing archive exists at the outermost
// level (§4.5).
func ResolveParent(outputMap map[model.BuildSystemKey]*model.Build, filename string) (string, bool) {
	current := filename
	for {
		idx := strings.LastIndex(current, nestedSeparator)
		if idx < 0 {
			return "", false
		}
		parent := current[:idx]
		if archive, ok := findArchive(outputMap, parent); ok {
			archive.UnmatchedFilenames[filename] = struct{}{}
			return parent, true
		}
		current = parent
	}
}

func findArchive(outputMap map[model.BuildSystemKey]*model.Build, filename string) (*model.LocalArchive, bool) {
	for key, build := range outputMap {
		if key == model.NotFoundKey {
			continue
		}
		for _, a := range build.Archives {
			for _, f := range a.Filenames {
				if f == filename {
					return a, true
				}
			}
		}
	}
	return nil, false
}

// Sweep iterates bucket-0's archives, resolving nested-archive parentage
// for every filename. Filenames whose parent is found are dropped from
// bucket 0 (their parent now owns them via UnmatchedFilenames); now-empty
// LocalArchives are removed (§4.6 step k).
func (t *Tracker) Sweep(outputMap map[model.BuildSystemKey]*model.Build) {
	var kept []*model.LocalArchive
	for _, a := range t.bucket.Archives {
		var remaining []string
		for _, f := range a.Filenames {
			if !strings.Contains(f, nestedSeparator) {
				remaining = append(remaining, f)
				continue
			}
			if _, found := ResolveParent(outputMap, f); found {
				continue
			}
			remaining = append(remaining, f)
		}
		a.Filenames = remaining
		if len(a.Filenames) > 0 {
			kept = append(kept, a)
		}
	}
	t.bucket.Archives = kept
}
