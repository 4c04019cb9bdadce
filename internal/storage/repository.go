// Package storage contains the backend-agnostic database sink contracts: the
// Repository interface, a registry of backend factories and the batched
// loader that feeds rows into a Repository.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownKind is returned by New for an unregistered storage kind.
var ErrUnknownKind = errors.New("storage: unknown kind")

// Repository is a write-only handle to one destination table.
type Repository interface {
	// CopyFrom bulk-inserts rows aligned to columns and reports how many were
	// inserted.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)

	// Exec runs a single statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	Close()
}

// Config is the backend-neutral connection description passed to factories.
type Config struct {
	Kind    string
	DSN     string
	Table   string
	Columns []string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under kind. Backends call it from init.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %v)", ErrUnknownKind, cfg.Kind, ListKinds())
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds, sorted.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Writer is the part of Repository a backend implements itself.
type Writer interface {
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	Exec(ctx context.Context, sql string) error
}

// WithClose completes w into a Repository whose Close runs closeFn once.
// A nil closeFn is allowed.
func WithClose(w Writer, closeFn func()) Repository {
	return &closer{Writer: w, closeFn: closeFn}
}

type closer struct {
	Writer
	once    sync.Once
	closeFn func()
}

func (c *closer) Close() {
	c.once.Do(func() {
		if c.closeFn != nil {
			c.closeFn()
		}
	})
}
