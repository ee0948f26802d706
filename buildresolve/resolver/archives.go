package resolver

import (
	"context"
	"fmt"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/cache"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

// findBuilds implements §4.6 findBuilds(multimap) steps (a)-(i) against the
// KOJI catalog.
func (r *Resolver) findBuilds(ctx context.Context, multimap map[model.Checksum][]string) error {
	g, err := r.ensureGate(ctx)
	if err != nil {
		return resolveCatalogErr("resolving archive extensions", err)
	}

	rpmEntries, archiveEntries := g.Partition(multimap)

	archiveCandidates, err := r.resolveArchiveEntries(ctx, archiveEntries)
	if err != nil {
		return err
	}
	rpmCandidates, err := r.resolveRpmEntries(ctx, rpmEntries)
	if err != nil {
		return err
	}

	for checksum, archives := range archiveCandidates {
		r.decideArchive(checksum, multimap[checksum], archives)
	}
	for checksum, rpm := range rpmCandidates {
		r.decideRpm(checksum, multimap[checksum], rpm)
	}
	return nil
}

// resolveArchiveEntries runs steps (c)-(g): cache lookup, chunked remote
// fan-out, enrichment, write-through, and build-metadata assembly.
func (r *Resolver) resolveArchiveEntries(ctx context.Context, archiveEntries map[model.Checksum][]string) (map[model.Checksum][]*model.RemoteArchive, error) {
	results := map[model.Checksum][]*model.RemoteArchive{}

	var missChecksums []model.Checksum
	var missValues []string
	for checksum := range archiveEntries {
		if cached, ok := r.cache.GetArchivesByChecksum(checksum.Type, checksum.Value); ok {
			results[checksum] = toPointers(cached)
			continue
		}
		missChecksums = append(missChecksums, checksum)
		missValues = append(missValues, checksum.Value)
	}

	if len(missValues) > 0 {
		chunks := chunk(missValues, r.cfg.KojiMulticallSize)
		chunkResults, err := runBounded(ctx, r.cfg.KojiNumThreads, chunks, func(ctx context.Context, c []string) ([][]model.RemoteArchive, error) {
			return r.koji.ListArchivesByChecksum(ctx, c)
		})
		if err != nil {
			return nil, resolveCatalogErr("listArchivesByChecksum", err)
		}

		flat := make([][]model.RemoteArchive, 0, len(missValues))
		for _, cr := range chunkResults {
			flat = append(flat, cr...)
		}

		var toEnrich []*model.RemoteArchive
		for i, checksum := range missChecksums {
			archives := flat[i]
			for j := range archives {
				if archives[j].Checksum != checksum.Value {
					log.Warn(fmt.Sprintf("build-resolver: KOJI returned checksum %s for query %s, never expected", archives[j].Checksum, checksum.Value))
				}
			}
			r.cache.PutArchivesByChecksum(checksum.Type, checksum.Value, archives)
			ptrs := toPointers(archives)
			results[checksum] = ptrs
			toEnrich = append(toEnrich, ptrs...)
		}

		if len(toEnrich) > 0 {
			if err := r.koji.EnrichArchiveTypeInfo(ctx, toEnrich); err != nil {
				return nil, resolveCatalogErr("enrichArchiveTypeInfo", err)
			}
		}
	}

	if err := r.assembleBuilds(ctx, results); err != nil {
		return nil, err
	}
	return results, nil
}

// assembleBuilds implements step (f): union build ids from the candidate
// archives, skip anything already cached or in the output map, and fetch
// getBuilds/listTags/listArchivesByBuild/getTaskInfo in parallel for the
// rest.
func (r *Resolver) assembleBuilds(ctx context.Context, results map[model.Checksum][]*model.RemoteArchive) error {
	needed := map[int]struct{}{}
	for _, archives := range results {
		for _, a := range archives {
			if a.BuildID == 0 {
				continue
			}
			if _, ok := r.outputMap[model.BuildSystemKey{System: r.koji.System(), ID: a.BuildID}]; ok {
				continue
			}
			if _, ok := r.cache.GetBuild(a.BuildID); ok {
				continue
			}
			needed[a.BuildID] = struct{}{}
		}
	}
	if len(needed) == 0 {
		return nil
	}
	ids := make([]int, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}

	var infos []model.BuildInfo
	var tags [][]model.Tag
	var buildArchives [][]model.RemoteArchive
	var tasks []model.TaskInfo

	g, gctx := errgroupFour(ctx)
	g.Go(func() (err error) { infos, err = r.koji.GetBuilds(gctx, ids); return })
	g.Go(func() (err error) { tags, err = r.koji.ListTags(gctx, ids); return })
	g.Go(func() (err error) { buildArchives, err = r.koji.ListArchivesByBuild(gctx, ids); return })
	g.Go(func() error {
		taskIDs := make([]int, 0, len(ids))
		for _, id := range ids {
			taskIDs = append(taskIDs, id)
		}
		t, err := r.koji.GetTaskInfo(gctx, taskIDs, true)
		tasks = t
		return err
	})
	if err := g.Wait(); err != nil {
		return resolveCatalogErr("assembling build metadata", err)
	}

	taskByID := map[int]model.TaskInfo{}
	for _, t := range tasks {
		taskByID[t.TaskID] = t
	}

	var toEnrich []*model.RemoteArchive
	for i, id := range ids {
		if infos[i].ID == 0 {
			log.Warn(fmt.Sprintf("build-resolver: getBuilds returned nothing for known archive build id %d, treating as soft miss", id))
			continue
		}
		rec := &cache.BuildRecord{
			Info:           infos[i],
			Tags:           tags[i],
			RemoteArchives: buildArchives[i],
		}
		if infos[i].HasTaskID() {
			if t, ok := taskByID[infos[i].TaskID]; ok {
				rec.TaskInfo = &t
			}
		}
		r.cache.PutBuild(id, rec, false)
		for j := range rec.RemoteArchives {
			if !rec.RemoteArchives[j].TypeNamesKnown {
				toEnrich = append(toEnrich, &rec.RemoteArchives[j])
			}
		}
	}
	if len(toEnrich) > 0 {
		if err := r.koji.EnrichArchiveTypeInfo(ctx, toEnrich); err != nil {
			return resolveCatalogErr("enrichArchiveTypeInfo (build archives)", err)
		}
	}
	return nil
}

// decideArchive implements step (i): 0/1/N candidate archives resolve
// differently.
func (r *Resolver) decideArchive(checksum model.Checksum, filenames []string, archives []*model.RemoteArchive) {
	switch len(archives) {
	case 0:
		r.markNotFound(checksum, filenames)
	case 1:
		r.attachArchive(checksum, filenames, archives[0])
	default:
		r.decideMultiArchive(checksum, filenames, archives)
	}
}

func (r *Resolver) attachArchive(checksum model.Checksum, filenames []string, archive *model.RemoteArchive) {
	rec, ok := r.cache.GetBuild(archive.BuildID)
	if !ok {
		log.Warn(fmt.Sprintf("build-resolver: archive %d references uncached build %d, soft miss", archive.ArchiveID, archive.BuildID))
		r.markNotFound(checksum, filenames)
		return
	}
	key := model.BuildSystemKey{System: r.koji.System(), ID: archive.BuildID}
	build := r.getOrPromoteBuild(key, rec)
	r.addArchiveToBuild(build, archive, filenames, checksum)
	r.markFound(checksum, filenames)
}

func (r *Resolver) decideMultiArchive(checksum model.Checksum, filenames []string, archives []*model.RemoteArchive) {
	byBuild := map[int][]*model.RemoteArchive{}
	var order []int
	for _, a := range archives {
		if _, seen := byBuild[a.BuildID]; !seen {
			order = append(order, a.BuildID)
		}
		byBuild[a.BuildID] = append(byBuild[a.BuildID], a)
	}
	sortInts(order)

	var candidates []candidateT
	for _, id := range order {
		rec, ok := r.cache.GetBuild(id)
		if !ok {
			continue
		}
		candidates = append(candidates, candidateT{
			build: &model.Build{
				Key:            model.BuildSystemKey{System: r.koji.System(), ID: id},
				Info:           rec.Info,
				Tags:           rec.Tags,
				RemoteArchives: rec.RemoteArchives,
			},
			archives: byBuild[id],
		})
	}
	if len(candidates) == 0 {
		r.markNotFound(checksum, filenames)
		return
	}

	chosenBuild, chosenArchives := selectKoji(candidates, r.inOutputMap)
	key := model.BuildSystemKey{System: r.koji.System(), ID: chosenBuild.Info.ID}
	build := r.getOrPromoteBuild(key, &cache.BuildRecord{Info: chosenBuild.Info, Tags: chosenBuild.Tags, RemoteArchives: chosenBuild.RemoteArchives})
	// When rule 1 (selectCachedWinner) fires, build and chosenBuild are the
	// same *model.Build already resident in the output map; selectCachedWinner
	// records duplicates on the non-selected candidates, not on the winner,
	// so chosenBuild.DuplicateArchives is not copied here. In the other two
	// rules chosenBuild.DuplicateArchives is always empty, so there is
	// nothing to carry over either way.
	for _, a := range chosenArchives {
		r.addArchiveToBuild(build, a, filenames, checksum)
	}
	r.markFound(checksum, filenames)
}

func toPointers(archives []model.RemoteArchive) []*model.RemoteArchive {
	ptrs := make([]*model.RemoteArchive, len(archives))
	for i := range archives {
		ptrs[i] = &archives[i]
	}
	return ptrs
}

func resolveCatalogErr(op string, err error) error {
	return fatalErrCatalog(op, err)
}
