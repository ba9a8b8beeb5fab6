//go:build !windows

package installdir

// Outside Windows the install directory only comes from the environment.
func lookupInstallDir() (string, error) {
	return "", nil
}
