// Package testutil provides shared test helpers for licenseforge packages:
// output capture, package workspaces with a matching license report, and a
// recording fake for the license-listing command.
package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// CaptureStdout returns everything written to os.Stdout while fn runs.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	out, _ := CaptureOutput(t, fn)
	return out
}

// CaptureStderr returns everything written to os.Stderr while fn runs.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	_, errOut := CaptureOutput(t, fn)
	return errOut
}

// CaptureOutput redirects os.Stdout and os.Stderr to pipes while fn runs.
//
// The pipes are drained concurrently so fn may write more than a pipe
// buffer holds. Both streams are restored before returning.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - fn: Function to execute while capturing
//
// Returns:
//   - stdout: Content written to os.Stdout
//   - stderr: Content written to os.Stderr
func CaptureOutput(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("create stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("create stderr pipe: %v", err)
	}

	outDone := drain(rOut)
	errDone := drain(rErr)

	oldStdout, oldStderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = wOut, wErr
	defer func() {
		os.Stdout, os.Stderr = oldStdout, oldStderr
	}()

	fn()

	_ = wOut.Close()
	_ = wErr.Close()
	return <-outDone, <-errDone
}

func drain(r *os.File) <-chan string {
	done := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		done <- buf.String()
	}()
	return done
}
