// Package catalog abstracts the two remote build systems (KOJI and PNC)
// behind the uniform query/response shape spec.md §4.3 specifies. The
// actual RPC transport is an external collaborator (§1): this package only
// declares the observable contract the Resolver drives, plus batching
// knobs (§4.3 "Batching").
package catalog

import (
	"context"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
)

// RemoteCatalog is the uniform operation set both backends expose. Every
// list-in operation returns a list-out of the same length and ordering as
// its input (§4.3).
type RemoteCatalog interface {
	// System identifies which backend this catalog talks to.
	System() model.BuildSystem

	// ArchiveExtensions returns every archive-type extension this catalog
	// knows about, used by ChecksumGate to build its default whitelist.
	ArchiveExtensions(ctx context.Context) ([]string, error)

	// ListArchivesByChecksum looks up each checksum value in turn; an
	// empty sublist means no match for that value.
	ListArchivesByChecksum(ctx context.Context, values []string) ([][]model.RemoteArchive, error)

	// GetBuilds fetches build metadata, parallel to ids.
	GetBuilds(ctx context.Context, ids []int) ([]model.BuildInfo, error)

	// ListTags fetches each build's tag list, parallel to ids.
	ListTags(ctx context.Context, ids []int) ([][]model.Tag, error)

	// GetTaskInfo fetches task metadata for ids that carry one;
	// withRequests additionally populates TaskInfo.Request.
	GetTaskInfo(ctx context.Context, ids []int, withRequests bool) ([]model.TaskInfo, error)

	// ListArchivesByBuild fetches every archive belonging to each build id.
	ListArchivesByBuild(ctx context.Context, ids []int) ([][]model.RemoteArchive, error)

	// ListRpms resolves RPM NVRA references to full RpmInfo records.
	ListRpms(ctx context.Context, nvra []model.NVRA) ([]model.RpmInfo, error)

	// ListRpmsByBuild fetches every RPM belonging to each build id,
	// parallel to ids (§4.6 step h: "listRpms(buildIds) as remoteRpms").
	ListRpmsByBuild(ctx context.Context, ids []int) ([][]model.RpmInfo, error)

	// EnrichArchiveTypeInfo annotates archives in place with type/extension
	// info the listing calls don't already carry.
	EnrichArchiveTypeInfo(ctx context.Context, archives []*model.RemoteArchive) error
}

// PncCatalog extends RemoteCatalog with the PNC-only operations §4.3
// enumerates.
type PncCatalog interface {
	RemoteCatalog

	// GetArtifactsByMd5 looks up artifacts by md5, parallel to values.
	GetArtifactsByMd5(ctx context.Context, values []string) ([][]model.PncArtifact, error)

	GetBuildRecordsByID(ctx context.Context, ids []int) ([]model.PncBuildRecord, error)
	GetBuildConfigurationsByID(ctx context.Context, ids []int) ([]model.PncBuildConfiguration, error)
	GetProductVersionsByID(ctx context.Context, ids []int) ([]model.PncProductVersion, error)
	GetBuildRecordPushResultsByID(ctx context.Context, ids []int) ([]model.PncPushResult, error)
	GetBuiltArtifactsByID(ctx context.Context, ids []int) ([]model.PncArtifact, error)
}

// BatchOptions bounds how a catalog implementation fans a logical batch out
// over the wire (§4.3 "Batching").
type BatchOptions struct {
	MulticallSize int
	NumThreads    int
}
