// Package runner defines the Runner interface used to execute external
// programs (package managers, generators, git) and provides the os/exec
// implementation plus a recording double for tests.
package runner
