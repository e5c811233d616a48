package dispatch

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// LookPath resolves an executable like exec.LookPath but uses plain stat
// calls instead of faccessat2, which triggers SIGSYS under the seccomp
// filters of some Android/Termux kernels.
func LookPath(file string) (string, error) {
	if strings.Contains(file, string(filepath.Separator)) {
		info, err := os.Stat(file)
		if err == nil && !info.IsDir() && info.Mode()&0111 != 0 {
			return file, nil
		}
		return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			dir = "."
		}
		path := filepath.Join(dir, file)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() && info.Mode()&0111 != 0 {
			return path, nil
		}
	}

	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}
