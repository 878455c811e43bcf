//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package production

import "runtime"

func machine() (string, error) {
	return runtime.GOARCH, nil
}
