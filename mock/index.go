package mock

import (
	"context"

	"github.com/apidex/apidex"
)

var _ apidex.IndexWriter = (*IndexWriter)(nil)

// IndexWriter is a mock implementation of apidex.IndexWriter.
type IndexWriter struct {
	AddFn                func(ctx context.Context, member *apidex.MemberInfo) error
	AddBatchFn           func(ctx context.Context, members []*apidex.MemberInfo) error
	DeleteByPackageIDsFn func(ctx context.Context, ids []string) error
	DeleteAllFn          func(ctx context.Context) error
	CommitFn             func(ctx context.Context) error
	DocCountFn           func() (uint64, error)
	StatsFn              func() (apidex.IndexStats, error)
	CloseFn              func() error
}

func (w *IndexWriter) Add(ctx context.Context, member *apidex.MemberInfo) error {
	return w.AddFn(ctx, member)
}

func (w *IndexWriter) AddBatch(ctx context.Context, members []*apidex.MemberInfo) error {
	return w.AddBatchFn(ctx, members)
}

func (w *IndexWriter) DeleteByPackageIDs(ctx context.Context, ids []string) error {
	return w.DeleteByPackageIDsFn(ctx, ids)
}

func (w *IndexWriter) DeleteAll(ctx context.Context) error {
	return w.DeleteAllFn(ctx)
}

func (w *IndexWriter) Commit(ctx context.Context) error {
	return w.CommitFn(ctx)
}

func (w *IndexWriter) DocCount() (uint64, error) {
	return w.DocCountFn()
}

func (w *IndexWriter) Stats() (apidex.IndexStats, error) {
	return w.StatsFn()
}

func (w *IndexWriter) Close() error {
	return w.CloseFn()
}
