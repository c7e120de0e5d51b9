package preflight

import (
	"os"
	"strings"
)

// getShellCommandCheck returns the shell and args for checking if a command exists.
//
// The 'command -v' built-in also finds shell functions and builtins, which
// exec.LookPath cannot see. The shell is started the same way the
// license-listing command is, so both see the same PATH.
//
// Parameters:
//   - cmd: The command name to check for existence
//
// Returns:
//   - shell: The shell executable to use ($SHELL or "sh")
//   - args: Arguments running 'command -v'
func getShellCommandCheck(cmd string) (shell string, args []string) {
	shell = os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}
	return shell, []string{"-c", "command -v " + shellQuote(cmd)}
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
