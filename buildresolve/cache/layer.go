package cache

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

// Layer is the typed facade over the five persistent maps listed in
// spec.md §2, backed by a Manager. Every positive remote lookup must be
// written through this facade before the Resolver returns it (§3 invariant
// 4).
type Layer struct {
	manager Manager
	runID   string
}

// New wraps manager in a typed Layer. runID is a short correlation id
// stamped into cache-inconsistency warnings so that multiple concurrent
// Resolver runs sharing a cache can be told apart in logs.
func New(manager Manager) *Layer {
	return &Layer{manager: manager, runID: uuid.NewString()[:8]}
}

// RunID returns this Layer's short correlation id, for callers that want to
// tag diagnostics (e.g. a run manifest) with the same id cache warnings use.
func (l *Layer) RunID() string { return l.runID }

// Manager exposes the underlying Manager, for callers that need to pass it
// to manager-specific helpers such as WriteManifest.
func (l *Layer) Manager() Manager { return l.manager }

// ChecksumMapName builds the named-map key for a checksum-typed map, for
// callers outside this package that need to address one directly (e.g. a
// run manifest enumerating which maps to summarize).
func ChecksumMapName(name string, ctype model.ChecksumType) string {
	return mapKey(name, ctype)
}

func mapKey(name string, ctype model.ChecksumType) string {
	return name + ":" + string(ctype)
}

// GetArchivesByChecksum reads the archives-by-checksum[type] cache. A found
// empty slice is a valid negative cache entry (§4.2).
func (l *Layer) GetArchivesByChecksum(ctype model.ChecksumType, value string) ([]model.RemoteArchive, bool) {
	var archives []model.RemoteArchive
	if !l.getJSON(mapKey(MapArchivesByChecksum, ctype), value, &archives) {
		return nil, false
	}
	return archives, true
}

// PutArchivesByChecksum write-through caches archives for value, including
// the empty-list negative case.
func (l *Layer) PutArchivesByChecksum(ctype model.ChecksumType, value string, archives []model.RemoteArchive) {
	if archives == nil {
		archives = []model.RemoteArchive{}
	}
	l.putJSON(mapKey(MapArchivesByChecksum, ctype), value, archives)
}

// GetRpmByChecksum reads the rpm-build-by-checksum[type] cache.
func (l *Layer) GetRpmByChecksum(ctype model.ChecksumType, value string) (model.RpmInfo, bool) {
	var rpm model.RpmInfo
	ok := l.getJSON(mapKey(MapRpmBuildByChecksum, ctype), value, &rpm)
	return rpm, ok
}

// PutRpmByChecksum write-through caches the RpmInfo resolved for value.
func (l *Layer) PutRpmByChecksum(ctype model.ChecksumType, value string, rpm model.RpmInfo) {
	l.putJSON(mapKey(MapRpmBuildByChecksum, ctype), value, rpm)
}

// GetBuild reads the build-by-id cache for a KOJI build id.
func (l *Layer) GetBuild(id int) (*BuildRecord, bool) {
	return l.getBuildFrom(MapBuildByID, id)
}

// PutBuild write-through caches rec for id. The first caller wins; a
// later write with different canonical metadata is logged as a warning
// only, except for RPM-typed builds which may legitimately re-cache
// (§4.2, §7).
func (l *Layer) PutBuild(id int, rec *BuildRecord, isRpm bool) {
	l.putBuildInto(MapBuildByID, id, rec, isRpm)
}

// GetPncArtifacts reads the pnc-artifacts-by-checksum[md5] cache.
func (l *Layer) GetPncArtifacts(value string) ([]model.PncArtifact, bool) {
	var artifacts []model.PncArtifact
	if !l.getJSON(mapKey(MapPncArtifactsByCksum, model.ChecksumMD5), value, &artifacts) {
		return nil, false
	}
	return artifacts, true
}

// PutPncArtifacts write-through caches artifacts for value.
func (l *Layer) PutPncArtifacts(value string, artifacts []model.PncArtifact) {
	if artifacts == nil {
		artifacts = []model.PncArtifact{}
	}
	l.putJSON(mapKey(MapPncArtifactsByCksum, model.ChecksumMD5), value, artifacts)
}

// GetPncBuild reads the pnc-build-by-id cache.
func (l *Layer) GetPncBuild(id int) (*BuildRecord, bool) {
	return l.getBuildFrom(MapPncBuildByID, id)
}

// PutPncBuild write-through caches rec for a PNC build record id.
func (l *Layer) PutPncBuild(id int, rec *BuildRecord) {
	l.putBuildInto(MapPncBuildByID, id, rec, false)
}

func (l *Layer) getBuildFrom(mapName string, id int) (*BuildRecord, bool) {
	var rec BuildRecord
	if !l.getJSON(mapName, fmt.Sprint(id), &rec) {
		return nil, false
	}
	return &rec, true
}

func (l *Layer) putBuildInto(mapName string, id int, rec *BuildRecord, isRpm bool) {
	key := fmt.Sprint(id)
	if existing, ok := l.getBuildFrom(mapName, id); ok && !isRpm {
		if !existing.Equal(rec) {
			log.Warn(fmt.Sprintf("build-resolver[%s]: cache inconsistency for build %d: keeping first cached metadata", l.runID, id))
		}
		return
	}
	l.putJSON(mapName, key, rec)
}

func (l *Layer) getJSON(mapName, key string, out interface{}) bool {
	raw, found, err := l.manager.NamedMap(mapName).Get(key)
	if err != nil {
		log.Warn(fmt.Sprintf("build-resolver[%s]: cache read failed for %s/%s: %v", l.runID, mapName, key, err))
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn(fmt.Sprintf("build-resolver[%s]: cache value corrupt for %s/%s: %v", l.runID, mapName, key, err))
		return false
	}
	return true
}

func (l *Layer) putJSON(mapName, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn(fmt.Sprintf("build-resolver[%s]: cache encode failed for %s/%s: %v", l.runID, mapName, key, err))
		return
	}
	if err := l.manager.NamedMap(mapName).Put(key, raw); err != nil {
		log.Warn(fmt.Sprintf("build-resolver[%s]: cache write failed for %s/%s: %v", l.runID, mapName, key, err))
	}
}
