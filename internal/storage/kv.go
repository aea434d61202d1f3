// Package storage persists entities as JSON documents in a namespaced
// key-value store. The KV backends only move bytes; Collection and Store
// add the typed layer on top.
package storage

import "context"

// Namespace separates entity kinds inside one KV.
type Namespace string

const (
	Users         Namespace = "users"
	Expenses      Namespace = "expenses"
	Budgets       Namespace = "budgets"
	Subscriptions Namespace = "subscriptions"
	Loans         Namespace = "loans"
	Filters       Namespace = "filters"
)

// Namespaces returns every namespace in use.
func Namespaces() []Namespace {
	return []Namespace{Users, Expenses, Budgets, Subscriptions, Loans, Filters}
}

// KV is a namespaced byte store. Get returns an error matching ErrNotFound
// for a missing id; Delete of a missing id is not an error. Iterate visits
// ids in ascending order and stops at the first error fn returns.
type KV interface {
	Get(ctx context.Context, ns Namespace, id string) ([]byte, error)
	Put(ctx context.Context, ns Namespace, id string, value []byte) error
	Delete(ctx context.Context, ns Namespace, id string) error
	Iterate(ctx context.Context, ns Namespace, fn func(id string, value []byte) error) error
	Clear(ctx context.Context, ns Namespace) error
	Close() error
}
