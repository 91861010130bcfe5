//go:build !unix

package execpath

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

func checkExecutable(path string, info os.FileInfo) error {
	if info.Mode()&0o111 != 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range filepath.SplitList(os.Getenv("PATHEXT")) {
		if ext != "" && strings.EqualFold(ext, allowed) {
			return nil
		}
	}
	return errors.New("no execute permission")
}
