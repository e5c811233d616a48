//go:build !unix

package dispatch

import "os/exec"

// setProcessGroup is a no-op where process groups are unavailable; the
// default context cancellation kills the direct child and WaitDelay bounds
// the wait on inherited pipes.
func setProcessGroup(_ *exec.Cmd) {}
