package resolver

import (
	"context"
	"fmt"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/cache"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/resolveerr"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/selector"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"golang.org/x/sync/errgroup"
)

// findBuildsPnc implements §4.6 findBuildsPnc: the PNC mirror of
// findBuilds, md5-only, returning whatever checksums PNC could not resolve
// so the caller can retry them against KOJI.
func (r *Resolver) findBuildsPnc(ctx context.Context, multimap map[model.Checksum][]string) (map[model.Checksum][]string, error) {
	g, err := r.ensureGate(ctx)
	if err != nil {
		return nil, resolveerr.Catalog("resolving archive extensions", err)
	}
	rpmEntries, archiveEntries := g.Partition(multimap)
	candidates := map[model.Checksum][]string{}
	for c, f := range archiveEntries {
		candidates[c] = f
	}
	for c, f := range rpmEntries {
		candidates[c] = f
	}

	results := map[model.Checksum][]model.PncArtifact{}
	remaining := map[model.Checksum][]string{}
	var missChecksums []model.Checksum
	var missValues []string
	for checksum := range candidates {
		if checksum.Type != model.ChecksumMD5 {
			remaining[checksum] = candidates[checksum]
			continue
		}
		if cached, ok := r.cache.GetPncArtifacts(checksum.Value); ok {
			results[checksum] = cached
			continue
		}
		missChecksums = append(missChecksums, checksum)
		missValues = append(missValues, checksum.Value)
	}

	if len(missValues) > 0 {
		chunks := chunk(missValues, r.cfg.KojiMulticallSize)
		chunkResults, err := runBounded(ctx, r.cfg.KojiNumThreads, chunks, func(ctx context.Context, c []string) ([][]model.PncArtifact, error) {
			return r.pnc.GetArtifactsByMd5(ctx, c)
		})
		if err != nil {
			return nil, resolveerr.Catalog("getArtifactsByMd5", err)
		}
		flat := make([][]model.PncArtifact, 0, len(missValues))
		for _, cr := range chunkResults {
			flat = append(flat, cr...)
		}
		for i, checksum := range missChecksums {
			r.cache.PutPncArtifacts(checksum.Value, flat[i])
			results[checksum] = flat[i]
		}
	}

	selected := map[model.Checksum]model.PncArtifact{}
	neededBuildRecords := map[int]struct{}{}
	for checksum, artifacts := range results {
		best, ok := selector.SelectPnc(artifacts)
		if !ok || !best.HasBuildRecord() {
			remaining[checksum] = candidates[checksum]
			continue
		}
		selected[checksum] = best
		buildRecordID := best.BuildRecordIDs[0]
		if _, ok := r.outputMap[model.BuildSystemKey{System: model.SystemPnc, ID: buildRecordID}]; ok {
			continue
		}
		if _, ok := r.cache.GetPncBuild(buildRecordID); ok {
			continue
		}
		neededBuildRecords[buildRecordID] = struct{}{}
	}

	if len(neededBuildRecords) > 0 {
		if err := r.assemblePncBuilds(ctx, neededBuildRecords); err != nil {
			return nil, err
		}
	}

	for checksum, artifact := range selected {
		buildRecordID := artifact.BuildRecordIDs[0]
		rec, ok := r.cache.GetPncBuild(buildRecordID)
		if !ok {
			log.Warn(fmt.Sprintf("build-resolver: pnc artifact %d references unresolved build record %d, soft miss", artifact.ID, buildRecordID))
			remaining[checksum] = candidates[checksum]
			continue
		}
		key := model.BuildSystemKey{System: model.SystemPnc, ID: buildRecordID}
		build := r.getOrPromoteBuild(key, rec)
		archive := pncArtifactToRemoteArchive(artifact, buildRecordID, checksum)
		r.addArchiveToBuild(build, archive, candidates[checksum], checksum)
		r.markFound(checksum, candidates[checksum])
	}

	return remaining, nil
}

// assemblePncBuilds fetches the single follow-up batch §4.6 describes —
// BuildRecords, BuildConfigurations, ProductVersions, PushResults, and
// BuiltArtifacts — and adapts each PncBuild to the canonical Build shape
// before caching it.
func (r *Resolver) assemblePncBuilds(ctx context.Context, needed map[int]struct{}) error {
	ids := make([]int, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}

	var records []model.PncBuildRecord
	var configs []model.PncBuildConfiguration
	var versions []model.PncProductVersion
	var pushes []model.PncPushResult
	var builtArtifacts []model.PncArtifact

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { records, err = r.pnc.GetBuildRecordsByID(gctx, ids); return })
	g.Go(func() (err error) { configs, err = r.pnc.GetBuildConfigurationsByID(gctx, ids); return })
	g.Go(func() (err error) { versions, err = r.pnc.GetProductVersionsByID(gctx, ids); return })
	g.Go(func() (err error) { pushes, err = r.pnc.GetBuildRecordPushResultsByID(gctx, ids); return })
	g.Go(func() (err error) { builtArtifacts, err = r.pnc.GetBuiltArtifactsByID(gctx, ids); return })
	if err := g.Wait(); err != nil {
		return resolveerr.Catalog("assembling pnc build metadata", err)
	}

	// BuiltArtifacts gives the full set of artifacts a build record
	// produced, regardless of which checksum led us here; fold it into
	// RemoteArchives the same way listArchivesByBuild populates a KOJI
	// BuildRecord, so the cached record and the promoted Build carry the
	// build's complete archive list.
	archivesByBuild := map[int][]model.RemoteArchive{}
	for _, a := range builtArtifacts {
		for _, buildID := range a.BuildRecordIDs {
			archivesByBuild[buildID] = append(archivesByBuild[buildID], model.RemoteArchive{
				ArchiveID: a.ID,
				BuildID:   buildID,
				Filename:  a.Filename,
			})
		}
	}

	configByID := map[int]model.PncBuildConfiguration{}
	for _, c := range configs {
		configByID[c.ID] = c
	}
	versionByID := map[int]model.PncProductVersion{}
	for _, v := range versions {
		versionByID[v.ID] = v
	}
	pushByBuild := map[int]model.PncPushResult{}
	for _, p := range pushes {
		pushByBuild[p.BuildID] = p
	}

	for i, id := range ids {
		if i >= len(records) || records[i].ID == 0 {
			log.Warn(fmt.Sprintf("build-resolver: pnc getBuildRecordsById returned nothing for %d, soft miss", id))
			continue
		}
		rec := records[i]
		cfg := configByID[rec.BuildConfigID]
		ver := versionByID[rec.ProductVersionID]

		state := model.StateFailed
		if rec.Status == "SUCCESS" {
			state = model.StateComplete
		}
		var tags []model.Tag
		if push, ok := pushByBuild[rec.ID]; ok && push.BrewTag != "" {
			tags = append(tags, model.Tag{Name: push.BrewTag})
		}

		buildRec := &cache.BuildRecord{
			Info: model.BuildInfo{
				ID:      rec.ID,
				State:   state,
				Name:    cfg.Name,
				Version: ver.Version,
				Release: rec.ScmRevision,
			},
			Tags:           tags,
			RemoteArchives: archivesByBuild[rec.ID],
		}
		r.cache.PutPncBuild(id, buildRec)
	}
	return nil
}

func pncArtifactToRemoteArchive(a model.PncArtifact, buildID int, checksum model.Checksum) *model.RemoteArchive {
	return &model.RemoteArchive{
		ArchiveID:    a.ID,
		BuildID:      buildID,
		Filename:     a.Filename,
		Checksum:     checksum.Value,
		ChecksumType: checksum.Type,
	}
}
