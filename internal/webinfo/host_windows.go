//go:build windows

package webinfo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procOpenFileMappingW = modkernel32.NewProc("OpenFileMappingW")

	mapViewOfFile = windows.MapViewOfFile
)

func openFileMapping(access uint32, inherit bool, name *uint16) (windows.Handle, error) {
	if err := procOpenFileMappingW.Find(); err != nil {
		return 0, err
	}
	var inheritHandle uintptr
	if inherit {
		inheritHandle = 1
	}
	r0, _, e1 := syscall.SyscallN(procOpenFileMappingW.Addr(),
		uintptr(access), inheritHandle, uintptr(unsafe.Pointer(name)))
	if r0 == 0 {
		if e1 != 0 {
			return 0, e1
		}
		return 0, syscall.EINVAL
	}
	return windows.Handle(r0), nil
}

type region struct {
	file    windows.Handle
	mapping windows.Handle
	view    uintptr
	size    int
}

func createRegion(dir, id string, content []byte) (*region, error) {
	r := &region{file: windows.InvalidHandle, size: len(content)}
	ok := false
	defer func() {
		if !ok {
			r.close()
		}
	}()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, newPublishError(BackingStoreFailed, err)
	}

	path, err := windows.UTF16PtrFromString(filepath.Join(dir, id))
	if err != nil {
		return nil, newPublishError(BackingStoreFailed, err)
	}
	name, err := windows.UTF16PtrFromString(id)
	if err != nil {
		return nil, newPublishError(BackingStoreFailed, err)
	}

	// Exclusive access; the file disappears once the last handle closes.
	file, err := windows.CreateFile(
		path,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		0,
		nil,
		windows.CREATE_ALWAYS,
		windows.FILE_ATTRIBUTE_NORMAL|windows.FILE_FLAG_DELETE_ON_CLOSE,
		0)
	if err != nil {
		return nil, newPublishError(BackingStoreFailed, err)
	}
	r.file = file

	var written uint32
	if err := windows.WriteFile(r.file, content, &written, nil); err != nil {
		return nil, newPublishError(BackingStoreFailed, err)
	}
	if int(written) != len(content) {
		return nil, newPublishError(BackingStoreFailed, io.ErrShortWrite)
	}
	if err := windows.FlushFileBuffers(r.file); err != nil {
		return nil, newPublishError(BackingStoreFailed, err)
	}

	mapping, err := windows.CreateFileMapping(r.file, nil, windows.PAGE_READWRITE, 0, 0, name)
	if mapping != 0 {
		r.mapping = mapping
	}
	// ERROR_ALREADY_EXISTS comes back together with a usable handle.
	if err != nil && !(mapping != 0 && errors.Is(err, windows.ERROR_ALREADY_EXISTS)) {
		if errors.Is(err, windows.ERROR_FILE_INVALID) {
			return nil, newPublishError(InvalidBackingStore, err)
		}
		return nil, newPublishError(MappingFailed, err)
	}

	view, err := mapViewOfFile(r.mapping, windows.FILE_MAP_READ|windows.FILE_MAP_WRITE, 0, 0, 0)
	if err != nil {
		return nil, newPublishError(MappingFailed, err)
	}
	r.view = view

	ok = true
	return r, nil
}

func (r *region) close() {
	if r.view != 0 {
		_ = windows.UnmapViewOfFile(r.view)
		r.view = 0
	}
	if r.mapping != 0 {
		_ = windows.CloseHandle(r.mapping)
		r.mapping = 0
	}
	if r.file != windows.InvalidHandle && r.file != 0 {
		_ = windows.CloseHandle(r.file)
		r.file = windows.InvalidHandle
	}
}

func (r *region) bytes() []byte {
	out := make([]byte, r.size)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(r.view)), r.size))
	return out
}

// openRegion attaches by name only; dir is not needed on Windows.
func openRegion(_ string, id string) ([]byte, error) {
	name, err := windows.UTF16PtrFromString(id)
	if err != nil {
		return nil, err
	}

	mapping, err := openFileMapping(windows.FILE_MAP_READ, false, name)
	if err != nil {
		return nil, fmt.Errorf("OpenFileMapping: %w", err)
	}
	defer windows.CloseHandle(mapping)

	view, err := windows.MapViewOfFile(mapping, windows.FILE_MAP_READ, 0, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("MapViewOfFile: %w", err)
	}
	defer windows.UnmapViewOfFile(view)

	var mbi windows.MemoryBasicInformation
	if err := windows.VirtualQuery(view, &mbi, unsafe.Sizeof(mbi)); err != nil {
		return nil, fmt.Errorf("VirtualQuery: %w", err)
	}

	// The view is page-rounded; the record ends at the first NUL.
	data := unsafe.Slice((*byte)(unsafe.Pointer(view)), mbi.RegionSize)
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
