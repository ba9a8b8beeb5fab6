//go:build unix

package webinfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// On Unix the backing file under the namespace directory is the name other
// processes attach to, the same model as shm_open. Delete-on-close is done by
// unlinking the file on release.
var mmap = unix.Mmap

type region struct {
	file *os.File
	path string
	data []byte
}

func createRegion(dir, id string, content []byte) (*region, error) {
	r := &region{}
	ok := false
	defer func() {
		if !ok {
			r.close()
		}
	}()

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, newPublishError(BackingStoreFailed, err)
	}

	path := filepath.Join(dir, id)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, newPublishError(BackingStoreFailed, err)
	}
	r.file = f
	r.path = path

	if _, err := f.Write(content); err != nil {
		return nil, newPublishError(BackingStoreFailed, err)
	}
	// The mapping is built from the file's current content.
	if err := f.Sync(); err != nil {
		return nil, newPublishError(BackingStoreFailed, err)
	}

	data, err := mmap(int(f.Fd()), 0, len(content), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		if errors.Is(err, unix.EINVAL) || errors.Is(err, unix.ENODEV) || errors.Is(err, unix.EACCES) {
			return nil, newPublishError(InvalidBackingStore, err)
		}
		return nil, newPublishError(MappingFailed, err)
	}
	r.data = data

	ok = true
	return r, nil
}

func (r *region) close() {
	if r.data != nil {
		_ = unix.Munmap(r.data)
		r.data = nil
	}
	if r.file != nil {
		_ = r.file.Close()
		r.file = nil
	}
	if r.path != "" {
		_ = os.Remove(r.path)
		r.path = ""
	}
}

func (r *region) bytes() []byte {
	out := make([]byte, len(r.data))
	copy(out, r.data)
	return out
}

func openRegion(dir, id string) ([]byte, error) {
	f, err := os.Open(filepath.Join(dir, id))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("region %s is empty", id)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	defer unix.Munmap(data)

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
