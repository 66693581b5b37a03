package blobstore

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrInjected is the default error returned by FaultyStore.
var ErrInjected = errors.New("injected fault error")

// Fault defines specific failure behavior.
type Fault struct {
	FailAfterBytes int64 // Fail reads once this many bytes were read from one blob. -1 to disable.
	FailOnPut      bool
	FailOnOpen     bool
	Err            error
}

// FaultyStore is a BlobStore wrapper that can inject errors.
type FaultyStore struct {
	Store   BlobStore
	mu      sync.Mutex
	rules   map[string]Fault // Name pattern -> Fault
	Default Fault            // Fallback
	read    int64
}

// NewFaultyStore creates a new FaultyStore wrapping store.
func NewFaultyStore(store BlobStore) *FaultyStore {
	return &FaultyStore{
		Store: store,
		rules: make(map[string]Fault),
		Default: Fault{
			FailAfterBytes: -1, // No limit
		},
	}
}

// AddRule adds a fault injection rule for blob names containing pattern.
func (f *FaultyStore) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

// BytesRead returns the total bytes read through the store.
func (f *FaultyStore) BytesRead() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read
}

func (f *FaultyStore) faultFor(name string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()

	fault := f.Default
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			fault = rule
		}
	}
	if fault.Err == nil {
		fault.Err = ErrInjected
	}
	return fault
}

// Open implements BlobStore.
func (f *FaultyStore) Open(ctx context.Context, name string) (Blob, error) {
	fault := f.faultFor(name)
	if fault.FailOnOpen {
		return nil, fault.Err
	}
	b, err := f.Store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &faultyBlob{Blob: b, store: f, fault: fault}, nil
}

// Put implements BlobStore.
func (f *FaultyStore) Put(ctx context.Context, name string, data []byte) error {
	if fault := f.faultFor(name); fault.FailOnPut {
		return fault.Err
	}
	return f.Store.Put(ctx, name, data)
}

// Delete implements BlobStore.
func (f *FaultyStore) Delete(ctx context.Context, name string) error {
	return f.Store.Delete(ctx, name)
}

// List implements BlobStore.
func (f *FaultyStore) List(ctx context.Context, prefix string) ([]string, error) {
	return f.Store.List(ctx, prefix)
}

type faultyBlob struct {
	Blob
	store *FaultyStore
	fault Fault

	mu   sync.Mutex
	read int64
}

func (fb *faultyBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	fb.mu.Lock()
	if fb.fault.FailAfterBytes >= 0 && fb.read+int64(len(p)) > fb.fault.FailAfterBytes {
		fb.mu.Unlock()
		return 0, fb.fault.Err
	}
	fb.read += int64(len(p))
	fb.mu.Unlock()

	n, err := fb.Blob.ReadAt(ctx, p, off)

	fb.store.mu.Lock()
	fb.store.read += int64(n)
	fb.store.mu.Unlock()
	return n, err
}
