//go:build linux || darwin || freebsd || netbsd || openbsd

package fstore

import "syscall"

// availableSpace returns the number of bytes available to an unprivileged
// caller on the volume holding dir
func availableSpace(dir string) (uint64, error) {
	var st syscall.Statfs_t
	if err := syscall.Statfs(dir, &st); err != nil {
		return 0, err
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil
}
