//go:build linux

package motmp

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// createdAt prefers the statx birth time and falls back to mtime on
// filesystems that do not record one.
func createdAt(path string, info os.FileInfo) time.Time {
	var st unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &st)
	if err == nil && st.Mask&unix.STATX_BTIME != 0 && st.Btime.Sec != 0 {
		return time.Unix(st.Btime.Sec, int64(st.Btime.Nsec))
	}
	return info.ModTime()
}
