//go:build windows

package installdir

import (
	"golang.org/x/sys/windows/registry"
)

const registryPath = `Software\Story of Alicia`

// lookupInstallDir reads the default value of HKCU\Software\Story of Alicia.
func lookupInstallDir() (string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, registryPath, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer key.Close()

	dir, _, err := key.GetStringValue("")
	if err != nil {
		return "", err
	}
	return dir, nil
}
