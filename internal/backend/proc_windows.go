//go:build windows

package backend

import "os/exec"

func setProcAttr(cmd *exec.Cmd) {}

// Windows has no SIGTERM delivery for console processes; stop immediately.
func signalTerm(cmd *exec.Cmd) error { return cmd.Process.Kill() }

func killProc(cmd *exec.Cmd) error { return cmd.Process.Kill() }

// Process groups are not tracked on windows.
func groupAlive(int) bool { return false }

func killGroup(int) error { return nil }
