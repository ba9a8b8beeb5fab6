//go:build windows

package process

import (
	"context"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestShellExecuteInfoLayout(t *testing.T) {
	info := newShellExecuteInfo()

	want := uint32(60)
	if unsafe.Sizeof(uintptr(0)) == 8 {
		want = 112
	}
	assert.Equal(t, want, info.cbSize)
	assert.Equal(t, uintptr(want), unsafe.Sizeof(*info))
}

func TestShellExecuteExResolves(t *testing.T) {
	require.NoError(t, procShellExecuteExW.Find())
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, "-a b", commandLine(Command{Arguments: "-a b", Args: []string{"x"}}))
	assert.Equal(t, `bob "two words"`, commandLine(Command{Args: []string{"bob", "two words"}}))
}

func TestRunnerExitCode(t *testing.T) {
	r := NewRunner(zap.NewNop())

	p, err := r.Start(Command{Program: "cmd.exe", Arguments: "cmd.exe /c exit 3"})
	require.NoError(t, err)

	code, err := p.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}
