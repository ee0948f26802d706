package resolver

import (
	"context"
	"fmt"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/cache"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/nvra"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/resolveerr"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

// resolveRpmEntries implements §4.6 step (h): parse NVRA, batch-fetch RPM
// and build metadata, verify the md5 payloadhash, and attach each RpmInfo
// to its Build.
func (r *Resolver) resolveRpmEntries(ctx context.Context, rpmEntries map[model.Checksum][]string) (map[model.Checksum]*model.RpmInfo, error) {
	results := map[model.Checksum]*model.RpmInfo{}
	if len(rpmEntries) == 0 {
		return results, nil
	}

	var missChecksums []model.Checksum
	var missNvra []model.NVRA
	for checksum, filenames := range rpmEntries {
		if cached, ok := r.cache.GetRpmByChecksum(checksum.Type, checksum.Value); ok {
			rpmCopy := cached
			results[checksum] = &rpmCopy
			continue
		}
		rpmFilename := firstRpmFilename(filenames)
		parsed, err := nvra.Parse(rpmFilename)
		if err != nil {
			log.Warn(fmt.Sprintf("build-resolver: cannot parse NVRA from %s: %v", rpmFilename, err))
			continue
		}
		missChecksums = append(missChecksums, checksum)
		missNvra = append(missNvra, parsed)
	}

	if len(missNvra) > 0 {
		chunks := chunk(missNvra, r.cfg.KojiMulticallSize)
		chunkResults, err := runBounded(ctx, r.cfg.KojiNumThreads, chunks, func(ctx context.Context, c []model.NVRA) ([]model.RpmInfo, error) {
			return r.koji.ListRpms(ctx, c)
		})
		if err != nil {
			return nil, resolveerr.Catalog("listRpms", err)
		}
		flat := make([]model.RpmInfo, 0, len(missNvra))
		for _, cr := range chunkResults {
			flat = append(flat, cr...)
		}

		needed := map[int]struct{}{}
		for i, checksum := range missChecksums {
			rpm := flat[i]
			if checksum.Type == model.ChecksumMD5 && rpm.PayloadHash != "" && rpm.PayloadHash != checksum.Value {
				return nil, resolveerr.Inconsistent("rpm payloadhash mismatch",
					fmt.Errorf("checksum %s does not match rpm %s payloadhash %s", checksum.Value, rpm.Nvr, rpm.PayloadHash))
			}
			r.cache.PutRpmByChecksum(checksum.Type, checksum.Value, rpm)
			results[checksum] = &flat[i]
			if rpm.BuildID != 0 {
				if _, ok := r.outputMap[model.BuildSystemKey{System: r.koji.System(), ID: rpm.BuildID}]; !ok {
					if _, ok := r.cache.GetBuild(rpm.BuildID); !ok {
						needed[rpm.BuildID] = struct{}{}
					}
				}
			}
		}

		if len(needed) > 0 {
			if err := r.assembleRpmBuilds(ctx, needed); err != nil {
				return nil, err
			}
		}
	}

	return results, nil
}

func (r *Resolver) assembleRpmBuilds(ctx context.Context, needed map[int]struct{}) error {
	ids := make([]int, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}

	var infos []model.BuildInfo
	var tags [][]model.Tag
	var remoteRpms [][]model.RpmInfo
	var tasks []model.TaskInfo

	g, gctx := errgroupFour(ctx)
	g.Go(func() (err error) { infos, err = r.koji.GetBuilds(gctx, ids); return })
	g.Go(func() (err error) { tags, err = r.koji.ListTags(gctx, ids); return })
	g.Go(func() (err error) { remoteRpms, err = r.koji.ListRpmsByBuild(gctx, ids); return })
	g.Go(func() error { t, err := r.koji.GetTaskInfo(gctx, ids, true); tasks = t; return err })
	if err := g.Wait(); err != nil {
		return resolveerr.Catalog("assembling rpm build metadata", err)
	}

	taskByID := map[int]model.TaskInfo{}
	for _, t := range tasks {
		taskByID[t.TaskID] = t
	}
	for i, id := range ids {
		if infos[i].ID == 0 {
			log.Warn(fmt.Sprintf("build-resolver: getBuilds returned nothing for rpm build id %d, soft miss", id))
			continue
		}
		rec := &cache.BuildRecord{Info: infos[i], Tags: tags[i], RemoteRpms: remoteRpms[i]}
		if infos[i].HasTaskID() {
			if t, ok := taskByID[infos[i].TaskID]; ok {
				rec.TaskInfo = &t
			}
		}
		r.cache.PutBuild(id, rec, true)
	}
	return nil
}

func firstRpmFilename(filenames []string) string {
	for _, f := range filenames {
		if len(f) >= 4 && f[len(f)-4:] == ".rpm" {
			return f
		}
	}
	if len(filenames) > 0 {
		return filenames[0]
	}
	return ""
}

// decideRpm promotes or attaches the resolved RpmInfo for checksum, mirroring
// decideArchive's 0/1 cases (RPMs never produce multi-candidate ties in this
// engine: a payloadhash identifies exactly one RPM).
func (r *Resolver) decideRpm(checksum model.Checksum, filenames []string, rpm *model.RpmInfo) {
	if rpm == nil {
		r.markNotFound(checksum, filenames)
		return
	}
	rec, ok := r.cache.GetBuild(rpm.BuildID)
	if !ok {
		log.Warn(fmt.Sprintf("build-resolver: rpm %d references uncached build %d, soft miss", rpm.ID, rpm.BuildID))
		r.markNotFound(checksum, filenames)
		return
	}
	key := model.BuildSystemKey{System: r.koji.System(), ID: rpm.BuildID}
	build := r.getOrPromoteBuild(key, rec)
	r.addRpmToBuild(build, rpm, filenames, checksum)
	r.markFound(checksum, filenames)
}
