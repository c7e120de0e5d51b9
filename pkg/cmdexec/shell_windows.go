//go:build windows

package cmdexec

// getDefaultShell returns the command interpreter used when SHELL is not set.
func getDefaultShell() (shell string, args []string) {
	return "cmd", []string{"/C"}
}
