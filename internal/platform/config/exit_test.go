package config_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/louisbranch/actionconsole/internal/platform/config"
)

// os.Exit cannot be intercepted in-process, so the test re-runs itself with
// the prompt failure the cli binary reports when stdin closes mid-action.
func TestExitfReportsPromptFailureOnStderr(t *testing.T) {
	if os.Getenv("ACTIONCONSOLE_EXITF_SUBPROCESS") == "1" {
		config.Exitf("cli: %v", fmt.Errorf("read who: %w", io.EOF))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitfReportsPromptFailureOnStderr$")
	cmd.Env = append(os.Environ(), "ACTIONCONSOLE_EXITF_SUBPROCESS=1")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("err = %v, want exit status 1", err)
	}
	if got := stderr.String(); !strings.Contains(got, "cli: read who: EOF\n") {
		t.Fatalf("stderr = %q", got)
	}
	if bytes.Contains(stdout.Bytes(), []byte("read who")) {
		t.Fatalf("failure leaked to stdout: %q", stdout.String())
	}
}
