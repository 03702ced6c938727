//go:build !windows

package handler

import "golang.org/x/sys/unix"

// getDiskStats returns disk usage statistics for the given path.
func getDiskStats(path string) (total, free int64, ok bool) {
	var statfs unix.Statfs_t
	if err := unix.Statfs(path, &statfs); err != nil {
		return 0, 0, false
	}
	total = int64(statfs.Blocks) * int64(statfs.Bsize)
	free = int64(statfs.Bavail) * int64(statfs.Bsize)
	return total, free, true
}
