package testutil

import (
	"context"
	"sync"

	"github.com/ajxudir/licenseforge/pkg/cmdexec"
)

// ExecCall records one invocation of a FakeExec.
type ExecCall struct {
	Command        string
	Dir            string
	TimeoutSeconds int
}

// FakeExec replaces the license-listing command with canned output.
//
// Fields:
//   - Stdout, Stderr: Output returned by every call
//   - Err: Error returned by every call
type FakeExec struct {
	Stdout []byte
	Stderr []byte
	Err    error

	mu    sync.Mutex
	calls []ExecCall
}

// Execute implements cmdexec.ExecuteWithContextFunc.
func (f *FakeExec) Execute(ctx context.Context, command string, dir string, timeoutSeconds int) (cmdexec.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, ExecCall{Command: command, Dir: dir, TimeoutSeconds: timeoutSeconds})
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return cmdexec.Result{}, err
	}
	return cmdexec.Result{Stdout: f.Stdout, Stderr: f.Stderr}, f.Err
}

// Calls returns the recorded invocations.
func (f *FakeExec) Calls() []ExecCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ExecCall(nil), f.calls...)
}

// Install makes f the package-wide cmdexec.ExecuteWithContext until the test ends.
func (f *FakeExec) Install(t interface{ Cleanup(func()) }) {
	original := cmdexec.ExecuteWithContext
	cmdexec.ExecuteWithContext = f.Execute
	t.Cleanup(func() { cmdexec.ExecuteWithContext = original })
}
