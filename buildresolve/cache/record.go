package cache

import "github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"

// BuildRecord is the canonical metadata cached once per build id (§3
// invariant 2): buildInfo, tags, remote archives/rpms, and optional task
// info. It excludes the run-local LocalArchive/filename state, which is
// never cached — only the content a fresh Resolver run would re-fetch from
// the catalog is persisted.
type BuildRecord struct {
	Info           model.BuildInfo    `json:"info"`
	Tags           []model.Tag        `json:"tags"`
	RemoteArchives []model.RemoteArchive `json:"remoteArchives,omitempty"`
	RemoteRpms     []model.RpmInfo    `json:"remoteRpms,omitempty"`
	TaskInfo       *model.TaskInfo    `json:"taskInfo,omitempty"`
}

// Equal reports whether two records carry the same BuildInfo fields (tags,
// remote archives/rpms and task info are not compared), used to detect the
// "cache inconsistency" warning case in §4.2/§7.
func (r *BuildRecord) Equal(other *BuildRecord) bool {
	if r == nil || other == nil {
		return r == other
	}
	a, b := r.Info, other.Info
	return a.ID == b.ID && a.PackageID == b.PackageID && a.State == b.State &&
		a.Name == b.Name && a.Version == b.Version && a.Release == b.Release &&
		a.TaskID == b.TaskID && a.IsImport == b.IsImport
}
