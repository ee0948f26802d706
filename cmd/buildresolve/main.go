// Command buildresolve is the thin reference wiring for the Build
// Resolution Engine: load configuration, stand up a cache, drain a
// checksum queue fed from stdin, run the Resolver, and print a summary.
//
// Real KOJI and PNC clients are external collaborators the engine only
// talks to through catalog.RemoteCatalog / catalog.PncCatalog (spec §1);
// this binary wires in passthroughCatalog, a safe no-op default, as the
// integration seam an embedding deployment replaces with its own RPC
// client. Everything else — config, cache, queue, resolver, report — is
// exactly what a production deployment would reuse unchanged.
package main

import (
	"bufio"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/analyzer"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/assemble"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/cache"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/catalog"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/config"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/report"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/resolver"
	"github.com/jfrog/jfrog-cli-core/v2/utils/coreutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

func main() {
	log.SetLogger(log.NewLogger(log.INFO, nil))

	if err := run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadResolverConfig()
	if err != nil {
		return err
	}

	cacheDir, err := coreutils.GetJfrogHomeDir()
	if err != nil || cacheDir == "" {
		cacheDir = os.TempDir()
	}
	manager, err := cache.NewFileManager(cacheDir + "/build-resolver")
	if err != nil {
		return err
	}
	cacheLayer := cache.New(manager)

	koji := newPassthroughCatalog(model.SystemKoji)
	var pnc catalog.PncCatalog
	if cfg.PncEnabled() {
		log.Warn("build-resolver: pncURL is set but no PNC client is wired into this binary; running KOJI-only")
	}

	queue := analyzer.NewChannelQueue(256)
	r := resolver.New(cfg, koji, pnc, cacheLayer, queue)

	go feedStdin(queue)

	if err := r.Run(context.Background()); err != nil {
		return err
	}
	cache.WriteManifest(cacheDir+"/build-resolver", manager, cacheLayer.RunID(), []string{
		cache.MapBuildByID, cache.MapPncBuildByID,
		cache.ChecksumMapName(cache.MapArchivesByChecksum, model.ChecksumMD5),
		cache.ChecksumMapName(cache.MapRpmBuildByChecksum, model.ChecksumMD5),
		cache.ChecksumMapName(cache.MapPncArtifactsByCksum, model.ChecksumMD5),
	})

	result := assemble.New(r.OutputMap(), r.FoundChecksums(), r.NotFoundChecksums())
	return report.PrintSummary(result)
}

// feedStdin reads "filename" lines from stdin, computes their md5 (the only
// digest the selector resolves against remotes, §6), and pushes them onto
// the queue; the engine itself never computes checksums — that's this
// binary's stand-in for the distribution analyzer, an external collaborator.
func feedStdin(queue *analyzer.ChannelQueue) {
	defer queue.Close()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		filename := scanner.Text()
		if filename == "" {
			continue
		}
		f, err := os.Open(filename)
		if err != nil {
			queue.PushErrored(filename)
			continue
		}
		h := md5.New()
		_, err = io.Copy(h, f)
		closeErr := f.Close()
		if err != nil || closeErr != nil {
			queue.PushErrored(filename)
			continue
		}
		queue.PushChecksum(model.Checksum{
			Type:     model.ChecksumMD5,
			Value:    hex.EncodeToString(h.Sum(nil)),
			Filename: filename,
		})
	}
}

// passthroughCatalog is the safe, no-op RemoteCatalog default: every lookup
// reports no matches, so undiscovered content lands in the synthetic (NONE,
// 0) bucket rather than the binary failing to run at all. A deployment
// supplies its own catalog.RemoteCatalog wired to real KOJI/PNC RPC
// endpoints in place of this type.
type passthroughCatalog struct {
	system model.BuildSystem
}

func newPassthroughCatalog(system model.BuildSystem) *passthroughCatalog {
	return &passthroughCatalog{system: system}
}

func (c *passthroughCatalog) System() model.BuildSystem { return c.system }

func (c *passthroughCatalog) ArchiveExtensions(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (c *passthroughCatalog) ListArchivesByChecksum(ctx context.Context, values []string) ([][]model.RemoteArchive, error) {
	return make([][]model.RemoteArchive, len(values)), nil
}

func (c *passthroughCatalog) GetBuilds(ctx context.Context, ids []int) ([]model.BuildInfo, error) {
	return make([]model.BuildInfo, len(ids)), nil
}

func (c *passthroughCatalog) ListTags(ctx context.Context, ids []int) ([][]model.Tag, error) {
	return make([][]model.Tag, len(ids)), nil
}

func (c *passthroughCatalog) GetTaskInfo(ctx context.Context, ids []int, withRequests bool) ([]model.TaskInfo, error) {
	return make([]model.TaskInfo, len(ids)), nil
}

func (c *passthroughCatalog) ListArchivesByBuild(ctx context.Context, ids []int) ([][]model.RemoteArchive, error) {
	return make([][]model.RemoteArchive, len(ids)), nil
}

func (c *passthroughCatalog) ListRpms(ctx context.Context, nvra []model.NVRA) ([]model.RpmInfo, error) {
	return make([]model.RpmInfo, len(nvra)), nil
}

func (c *passthroughCatalog) ListRpmsByBuild(ctx context.Context, ids []int) ([][]model.RpmInfo, error) {
	return make([][]model.RpmInfo, len(ids)), nil
}

func (c *passthroughCatalog) EnrichArchiveTypeInfo(ctx context.Context, archives []*model.RemoteArchive) error {
	return nil
}

var _ catalog.RemoteCatalog = (*passthroughCatalog)(nil)
