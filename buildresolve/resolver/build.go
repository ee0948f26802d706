package resolver

import (
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/cache"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
)

// getOrPromoteBuild returns the Build for key, promoting it into the
// output map from rec if this is its first appearance this run (§3
// invariant 2: canonical metadata must be populated before promotion).
func (r *Resolver) getOrPromoteBuild(key model.BuildSystemKey, rec *cache.BuildRecord) *model.Build {
	if b, ok := r.outputMap[key]; ok {
		return b
	}
	b := &model.Build{
		Key:            key,
		Info:           rec.Info,
		Tags:           rec.Tags,
		RemoteArchives: rec.RemoteArchives,
		RemoteRpms:     rec.RemoteRpms,
		TaskInfo:       rec.TaskInfo,
	}
	r.outputMap[key] = b
	return b
}

// addArchiveToBuild implements §4.6 addArchiveToBuild: union filenames into
// an existing LocalArchive for this archive id, or create one, reseeding
// its checksum set from the analyzer's file-to-checksums association when
// available, then re-sort the build by filename ascending.
func (r *Resolver) addArchiveToBuild(build *model.Build, archive *model.RemoteArchive, filenames []string, checksum model.Checksum) {
	if existing := build.FindArchiveByID(archive.ArchiveID); existing != nil {
		for _, f := range filenames {
			existing.AddFilename(f)
		}
		existing.Checksums[checksum] = struct{}{}
		return
	}
	local := &model.LocalArchive{
		Archive:            archive,
		UnmatchedFilenames: map[string]struct{}{},
		Checksums:          map[model.Checksum]struct{}{checksum: {}},
	}
	for _, f := range filenames {
		local.AddFilename(f)
	}
	build.Archives = append(build.Archives, local)
	build.SortArchives()
}

// addRpmToBuild is addArchiveToBuild's RPM-keyed analogue.
func (r *Resolver) addRpmToBuild(build *model.Build, rpm *model.RpmInfo, filenames []string, checksum model.Checksum) {
	for _, a := range build.Archives {
		if a.Rpm != nil && a.Rpm.ID == rpm.ID {
			for _, f := range filenames {
				a.AddFilename(f)
			}
			a.Checksums[checksum] = struct{}{}
			return
		}
	}
	local := &model.LocalArchive{
		Rpm:                rpm,
		UnmatchedFilenames: map[string]struct{}{},
		Checksums:          map[model.Checksum]struct{}{checksum: {}},
		BuiltFromSource:    true,
	}
	for _, f := range filenames {
		local.AddFilename(f)
	}
	build.Archives = append(build.Archives, local)
	build.SortArchives()
}
