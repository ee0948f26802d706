// Package fake provides a testify mock.Mock-based RemoteCatalog/PncCatalog
// double for resolver/selector/gate unit tests, in the style of
// evidence/create/resolvers' MockArtifactoryServicesManager.
package fake

import (
	"context"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/catalog"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/stretchr/testify/mock"
)

// Catalog is a mock.Mock implementation of both catalog.RemoteCatalog and
// catalog.PncCatalog; tests stub only the methods a given scenario drives.
type Catalog struct {
	mock.Mock
	system model.BuildSystem
}

var (
	_ catalog.RemoteCatalog = (*Catalog)(nil)
	_ catalog.PncCatalog    = (*Catalog)(nil)
)

// NewKojiCatalog returns a Catalog that reports SystemKoji.
func NewKojiCatalog() *Catalog { return &Catalog{system: model.SystemKoji} }

// NewPncCatalog returns a Catalog that reports SystemPnc.
func NewPncCatalog() *Catalog { return &Catalog{system: model.SystemPnc} }

func (c *Catalog) System() model.BuildSystem { return c.system }

func (c *Catalog) ArchiveExtensions(ctx context.Context) ([]string, error) {
	args := c.Called(ctx)
	return stringSlice(args.Get(0)), args.Error(1)
}

func (c *Catalog) ListArchivesByChecksum(ctx context.Context, values []string) ([][]model.RemoteArchive, error) {
	args := c.Called(ctx, values)
	return archiveLists(args.Get(0)), args.Error(1)
}

func (c *Catalog) GetBuilds(ctx context.Context, ids []int) ([]model.BuildInfo, error) {
	args := c.Called(ctx, ids)
	return buildInfos(args.Get(0)), args.Error(1)
}

func (c *Catalog) ListTags(ctx context.Context, ids []int) ([][]model.Tag, error) {
	args := c.Called(ctx, ids)
	return tagLists(args.Get(0)), args.Error(1)
}

func (c *Catalog) GetTaskInfo(ctx context.Context, ids []int, withRequests bool) ([]model.TaskInfo, error) {
	args := c.Called(ctx, ids, withRequests)
	return taskInfos(args.Get(0)), args.Error(1)
}

func (c *Catalog) ListArchivesByBuild(ctx context.Context, ids []int) ([][]model.RemoteArchive, error) {
	args := c.Called(ctx, ids)
	return archiveLists(args.Get(0)), args.Error(1)
}

func (c *Catalog) ListRpms(ctx context.Context, nvra []model.NVRA) ([]model.RpmInfo, error) {
	args := c.Called(ctx, nvra)
	return rpmInfos(args.Get(0)), args.Error(1)
}

func (c *Catalog) ListRpmsByBuild(ctx context.Context, ids []int) ([][]model.RpmInfo, error) {
	args := c.Called(ctx, ids)
	return rpmLists(args.Get(0)), args.Error(1)
}

func (c *Catalog) EnrichArchiveTypeInfo(ctx context.Context, archives []*model.RemoteArchive) error {
	args := c.Called(ctx, archives)
	return args.Error(0)
}

func (c *Catalog) GetArtifactsByMd5(ctx context.Context, values []string) ([][]model.PncArtifact, error) {
	args := c.Called(ctx, values)
	return artifactLists(args.Get(0)), args.Error(1)
}

func (c *Catalog) GetBuildRecordsByID(ctx context.Context, ids []int) ([]model.PncBuildRecord, error) {
	args := c.Called(ctx, ids)
	return buildRecords(args.Get(0)), args.Error(1)
}

func (c *Catalog) GetBuildConfigurationsByID(ctx context.Context, ids []int) ([]model.PncBuildConfiguration, error) {
	args := c.Called(ctx, ids)
	return buildConfigs(args.Get(0)), args.Error(1)
}

func (c *Catalog) GetProductVersionsByID(ctx context.Context, ids []int) ([]model.PncProductVersion, error) {
	args := c.Called(ctx, ids)
	return productVersions(args.Get(0)), args.Error(1)
}

func (c *Catalog) GetBuildRecordPushResultsByID(ctx context.Context, ids []int) ([]model.PncPushResult, error) {
	args := c.Called(ctx, ids)
	return pushResults(args.Get(0)), args.Error(1)
}

func (c *Catalog) GetBuiltArtifactsByID(ctx context.Context, ids []int) ([]model.PncArtifact, error) {
	args := c.Called(ctx, ids)
	return artifacts(args.Get(0)), args.Error(1)
}

func stringSlice(v interface{}) []string {
	if v == nil {
		return nil
	}
	return v.([]string)
}

func archiveLists(v interface{}) [][]model.RemoteArchive {
	if v == nil {
		return nil
	}
	return v.([][]model.RemoteArchive)
}

func buildInfos(v interface{}) []model.BuildInfo {
	if v == nil {
		return nil
	}
	return v.([]model.BuildInfo)
}

func tagLists(v interface{}) [][]model.Tag {
	if v == nil {
		return nil
	}
	return v.([][]model.Tag)
}

func taskInfos(v interface{}) []model.TaskInfo {
	if v == nil {
		return nil
	}
	return v.([]model.TaskInfo)
}

func rpmInfos(v interface{}) []model.RpmInfo {
	if v == nil {
		return nil
	}
	return v.([]model.RpmInfo)
}

func rpmLists(v interface{}) [][]model.RpmInfo {
	if v == nil {
		return nil
	}
	return v.([][]model.RpmInfo)
}

func artifactLists(v interface{}) [][]model.PncArtifact {
	if v == nil {
		return nil
	}
	return v.([][]model.PncArtifact)
}

func artifacts(v interface{}) []model.PncArtifact {
	if v == nil {
		return nil
	}
	return v.([]model.PncArtifact)
}

func buildRecords(v interface{}) []model.PncBuildRecord {
	if v == nil {
		return nil
	}
	return v.([]model.PncBuildRecord)
}

func buildConfigs(v interface{}) []model.PncBuildConfiguration {
	if v == nil {
		return nil
	}
	return v.([]model.PncBuildConfiguration)
}

func productVersions(v interface{}) []model.PncProductVersion {
	if v == nil {
		return nil
	}
	return v.([]model.PncProductVersion)
}

func pushResults(v interface{}) []model.PncPushResult {
	if v == nil {
		return nil
	}
	return v.([]model.PncPushResult)
}
