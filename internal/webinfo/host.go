package webinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"alicia-launcher/internal/domain"
)

// Namespace is the temp subdirectory holding backing files.
const Namespace = "Alicia"

type hostOptions struct {
	dir string
}

type HostOption func(*hostOptions)

// WithDirectory overrides the directory that holds backing files.
func WithDirectory(dir string) HostOption {
	return func(o *hostOptions) {
		o.dir = dir
	}
}

func newHostOptions(opts []HostOption) hostOptions {
	o := hostOptions{dir: filepath.Join(os.TempDir(), Namespace)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Host publishes one web info record at a time into a named shared-memory
// region. The region stays alive until Release or Close is called.
//
// Readers that attach before Publish returns may observe partial content;
// the owning process must finish Publish before starting the consumer.
type Host struct {
	mu     sync.Mutex
	opts   hostOptions
	id     string
	region *region
}

func NewHost(opts ...HostOption) *Host {
	return &Host{opts: newHostOptions(opts)}
}

// Publish replaces any active publication with info under the region name id.
// On failure no handle opened by this call is left behind and the host is idle.
func (h *Host) Publish(id string, info domain.WebInfo) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.releaseLocked()

	if err := domain.ValidateRegionName(id); err != nil {
		return newPublishError(BackingStoreFailed, err)
	}

	r, err := createRegion(h.opts.dir, id, Marshal(info))
	if err != nil {
		return err
	}

	h.id = id
	h.region = r
	return nil
}

// Release tears down the active publication. Calling it on an idle host is a no-op.
func (h *Host) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.releaseLocked()
}

// Close releases the publication; it always returns nil.
func (h *Host) Close() error {
	h.Release()
	return nil
}

func (h *Host) releaseLocked() {
	if h.region == nil {
		return
	}
	h.region.close()
	h.region = nil
	h.id = ""
}

func (h *Host) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.region != nil
}

// ID returns the name of the active region, or "" when idle.
func (h *Host) ID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.id
}

// Bytes returns a copy of the mapped content of the active region.
func (h *Host) Bytes() ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.region == nil {
		return nil, ErrNotPublished
	}
	return h.region.bytes(), nil
}

// OpenRegion attaches to the region published under id and returns a copy of its content.
func OpenRegion(id string, opts ...HostOption) ([]byte, error) {
	if err := domain.ValidateRegionName(id); err != nil {
		return nil, err
	}
	o := newHostOptions(opts)
	data, err := openRegion(o.dir, id)
	if err != nil {
		return nil, fmt.Errorf("failed to open region %s: %w", id, err)
	}
	return data, nil
}

// ReadRegion attaches to the region published under id and decodes the record.
func ReadRegion(id string, opts ...HostOption) (domain.WebInfo, error) {
	data, err := OpenRegion(id, opts...)
	if err != nil {
		return domain.WebInfo{}, err
	}
	return Unmarshal(data)
}
