// Package cmd provides helpers for executing shell commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, repoDir, "git", "for-each-ref", "refs/heads")
//	if err != nil {
//	    // err contains stderr output if available
//	}
//
// Commands are echoed through the context logger when verbose logging is
// enabled (see [github.com/cpa750/git-sift/internal/log]).
package cmd
