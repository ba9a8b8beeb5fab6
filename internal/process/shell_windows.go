//go:build windows

package process

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const seeMaskNoCloseProcess = 0x00000040

var (
	modshell32          = windows.NewLazySystemDLL("shell32.dll")
	procShellExecuteExW = modshell32.NewProc("ShellExecuteExW")
)

// shellExecuteInfo mirrors SHELLEXECUTEINFOW.
type shellExecuteInfo struct {
	cbSize       uint32
	fMask        uint32
	hwnd         windows.Handle
	lpVerb       *uint16
	lpFile       *uint16
	lpParameters *uint16
	lpDirectory  *uint16
	nShow        int32
	hInstApp     windows.Handle
	lpIDList     uintptr
	lpClass      *uint16
	hkeyClass    windows.Handle
	dwHotKey     uint32
	hIcon        windows.Handle
	hProcess     windows.Handle
}

func newShellExecuteInfo() *shellExecuteInfo {
	info := &shellExecuteInfo{}
	info.cbSize = uint32(unsafe.Sizeof(*info))
	return info
}

func shellExecuteEx(info *shellExecuteInfo) error {
	if err := procShellExecuteExW.Find(); err != nil {
		return err
	}
	r1, _, e1 := syscall.SyscallN(procShellExecuteExW.Addr(), uintptr(unsafe.Pointer(info)))
	if r1 == 0 {
		if e1 != 0 {
			return e1
		}
		return syscall.EINVAL
	}
	return nil
}
