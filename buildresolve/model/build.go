package model

import "sort"

// BuildSystem names the two heterogeneous remote build systems this engine
// coordinates, plus the synthetic NONE system used for unresolved content.
type BuildSystem string

const (
	SystemNone BuildSystem = "NONE"
	SystemKoji BuildSystem = "KOJI"
	SystemPnc  BuildSystem = "PNC"
)

// BuildSystemKey uniquely identifies a Build across both catalogs. The pair
// (NONE, 0) names the synthetic bucket collecting unresolved content.
type BuildSystemKey struct {
	System BuildSystem
	ID     int
}

// NotFoundKey is the single (NONE, 0) key that must always be present in a
// Resolver's output map.
var NotFoundKey = BuildSystemKey{System: SystemNone, ID: 0}

// BuildState mirrors the catalog-side build lifecycle states.
type BuildState string

const (
	StateBuilding BuildState = "BUILDING"
	StateComplete BuildState = "COMPLETE"
	StateDeleted  BuildState = "DELETED"
	StateFailed   BuildState = "FAILED"
	StateCanceled BuildState = "CANCELED"
	StateAll      BuildState = "ALL"
)

// Tag is a catalog label attached to a build indicating distribution or
// release channel; an empty Tags slice means untagged.
type Tag struct {
	Name string
}

// BuildInfo is the canonical build metadata every promoted Build must carry
// before it is placed in the Resolver's output map (invariant 2, §3).
type BuildInfo struct {
	ID         int
	PackageID  int
	State      BuildState
	Name       string
	Version    string
	Release    string
	TaskID     int // 0 means absent
	TypeNames  map[string]struct{}
	IsImport   bool
}

// HasTaskID reports whether this build info carries a real task id.
func (b BuildInfo) HasTaskID() bool { return b.TaskID != 0 }

// TaskInfo is the catalog's build-task metadata, fetched only for builds
// that carry a task id.
type TaskInfo struct {
	TaskID  int
	Method  string
	Request *TaskRequest
}

// TaskRequest is the optional task request payload, present only when
// getTaskInfo was called with withRequests=true.
type TaskRequest struct {
	Raw []interface{}
}

// RemoteArchive is the catalog-side archive record, as returned by
// listArchivesByChecksum / listArchivesByBuild.
type RemoteArchive struct {
	ArchiveID      int
	BuildID        int
	Filename       string
	Checksum       string
	ChecksumType   ChecksumType
	Extension      string
	TypeNamesKnown bool // set once EnrichArchiveTypeInfo has annotated this record
}

// RpmInfo is the catalog-side RPM record, identified by its NVRA.
type RpmInfo struct {
	ID          int
	BuildID     int
	Nvr         string
	PayloadHash string // md5
	Arch        string
	Name        string
	Version     string
	Release     string
}

// PncQuality ranks a PncArtifact's review status; higher is more trustworthy.
// Scores follow spec.md §4.4 exactly.
type PncQuality string

const (
	QualityTested      PncQuality = "TESTED"
	QualityVerified    PncQuality = "VERIFIED"
	QualityNew         PncQuality = "NEW"
	QualityUnknown     PncQuality = "unknown"
	QualityDeprecated  PncQuality = "DEPRECATED"
	QualityTemporary   PncQuality = "TEMPORARY"
	QualityBlacklisted PncQuality = "BLACKLISTED"
	QualityDeleted     PncQuality = "DELETED"
)

var qualityScore = map[PncQuality]int{
	QualityTested:      3,
	QualityVerified:    2,
	QualityNew:         1,
	QualityUnknown:     0,
	QualityDeprecated:  -1,
	QualityTemporary:   -2,
	QualityBlacklisted: -3,
	QualityDeleted:     -4,
}

// Score returns this quality's tie-break rank; unrecognized values score the
// same as "unknown".
func (q PncQuality) Score() int {
	if s, ok := qualityScore[q]; ok {
		return s
	}
	return qualityScore[QualityUnknown]
}

// PncArtifact is a PNC-catalog artifact record matched by md5.
type PncArtifact struct {
	ID             int
	Filename       string
	Quality        PncQuality
	BuildRecordIDs []int
}

// HasBuildRecord reports whether this artifact names at least one build.
func (a PncArtifact) HasBuildRecord() bool { return len(a.BuildRecordIDs) > 0 }

// LocalArchive is a single archive or RPM contributed to a Build, carrying
// every local filename that content-matched it.
type LocalArchive struct {
	Archive            *RemoteArchive
	Rpm                *RpmInfo
	Filenames          []string // ordered set, ascending
	UnmatchedFilenames map[string]struct{}
	Checksums          map[Checksum]struct{}
	BuiltFromSource    bool
}

// SortKey is the filename LocalArchive instances are ordered by within a
// Build (§3: "Ordered within a build by archive.filename ascending").
func (a *LocalArchive) SortKey() string {
	if a.Archive != nil {
		return a.Archive.Filename
	}
	if a.Rpm != nil {
		return a.Rpm.Nvr
	}
	return ""
}

// ID returns the catalog archive id (positive) or rpm id, whichever this
// LocalArchive wraps. Synthetic bucket-0 entries carry negative ids.
func (a *LocalArchive) ID() int {
	if a.Archive != nil {
		return a.Archive.ArchiveID
	}
	if a.Rpm != nil {
		return a.Rpm.ID
	}
	return 0
}

// AddFilename inserts filename into the ordered set if not already present.
func (a *LocalArchive) AddFilename(filename string) {
	for _, f := range a.Filenames {
		if f == filename {
			return
		}
	}
	a.Filenames = append(a.Filenames, filename)
	sort.Strings(a.Filenames)
}

// Build is the resolved record for one (System, ID) key.
type Build struct {
	Key               BuildSystemKey
	Info              BuildInfo
	Tags              []Tag
	RemoteArchives    []RemoteArchive
	RemoteRpms        []RpmInfo
	TaskInfo          *TaskInfo
	Archives          []*LocalArchive
	DuplicateArchives []*RemoteArchive
}

// NewSyntheticBuild constructs the (NONE, 0) bucket created at Resolver
// construction (§6 "Synthetic build").
func NewSyntheticBuild() *Build {
	return &Build{
		Key: NotFoundKey,
		Info: BuildInfo{
			ID:      0,
			State:   StateAll,
			Name:    "not found",
			Version: "not found",
			Release: "not found",
		},
	}
}

// SortArchives re-sorts b.Archives by filename ascending, as required every
// time a new LocalArchive is added (§4.6 addArchiveToBuild).
func (b *Build) SortArchives() {
	sort.Slice(b.Archives, func(i, j int) bool {
		return b.Archives[i].SortKey() < b.Archives[j].SortKey()
	})
}

// FindArchiveByID returns the LocalArchive already tracking archiveID, if any.
func (b *Build) FindArchiveByID(archiveID int) *LocalArchive {
	for _, a := range b.Archives {
		if a.ID() == archiveID {
			return a
		}
	}
	return nil
}
