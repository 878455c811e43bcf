//go:build linux || darwin || freebsd || netbsd || openbsd

package production

import "golang.org/x/sys/unix"

// machine returns the uname machine field (x86_64, aarch64, arm64, ...).
func machine() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uts.Machine[:]), nil
}
