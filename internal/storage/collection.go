package storage

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds the parallel per-id deletes of DeleteMany.
const batchConcurrency = 8

// Collection is the typed view of one namespace.
type Collection[T any] struct {
	kv   KV
	ns   Namespace
	idOf func(T) string
}

func NewCollection[T any](kv KV, ns Namespace, idOf func(T) string) *Collection[T] {
	return &Collection[T]{kv: kv, ns: ns, idOf: idOf}
}

func (c *Collection[T]) Namespace() Namespace { return c.ns }

// GetAll decodes every record of the namespace. Order is unspecified.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	out := []T{}
	err := c.kv.Iterate(ctx, c.ns, func(id string, value []byte) error {
		var v T
		if err := json.Unmarshal(value, &v); err != nil {
			return storageErr("decode", c.ns, id, err)
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the record with id, or an error matching ErrNotFound.
func (c *Collection[T]) GetByID(ctx context.Context, id string) (T, error) {
	var v T
	raw, err := c.kv.Get(ctx, c.ns, id)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, storageErr("decode", c.ns, id, err)
	}
	return v, nil
}

// Put upserts v under its id.
func (c *Collection[T]) Put(ctx context.Context, v T) error {
	id := c.idOf(v)
	raw, err := json.Marshal(v)
	if err != nil {
		return storageErr("encode", c.ns, id, err)
	}
	return c.kv.Put(ctx, c.ns, id, raw)
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.kv.Delete(ctx, c.ns, id)
}

// BatchResult reports the outcome of a batch of independent operations.
// Err is the first failure, nil when every id succeeded.
type BatchResult struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
	Err     error    `json:"-"`
}

// DeleteMany deletes each id independently. A failure does not stop or
// undo the other deletes.
func (c *Collection[T]) DeleteMany(ctx context.Context, ids []string) BatchResult {
	var (
		mu  sync.Mutex
		res = BatchResult{Deleted: []string{}, Failed: []string{}}
		g   errgroup.Group
	)
	g.SetLimit(batchConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			err := c.kv.Delete(ctx, c.ns, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed = append(res.Failed, id)
				return err
			}
			res.Deleted = append(res.Deleted, id)
			return nil
		})
	}
	res.Err = g.Wait()
	sort.Strings(res.Deleted)
	sort.Strings(res.Failed)
	return res
}

// Clear removes every record of the namespace.
func (c *Collection[T]) Clear(ctx context.Context) error {
	return c.kv.Clear(ctx, c.ns)
}
