package resolver

import (
	"context"
	"sort"

	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/model"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/resolveerr"
	"github.com/jfrog/jfrog-cli-artifactory/buildresolve/selector"
	"golang.org/x/sync/errgroup"
)

type candidateT = selector.Candidate

func selectKoji(candidates []candidateT, inOutput selector.InOutputMap) (*model.Build, []*model.RemoteArchive) {
	return selector.SelectKoji(candidates, inOutput)
}

func sortInts(ids []int) {
	sort.Ints(ids)
}

func fatalErrCatalog(op string, err error) error {
	return resolveerr.Catalog(op, err)
}

// errgroupFour is a small readability wrapper around errgroup.WithContext
// for the fixed four-way parallel metadata fetch in step (f)/(h) of §4.6.
func errgroupFour(ctx context.Context) (*errgroup.Group, context.Context) {
	return errgroup.WithContext(ctx)
}
