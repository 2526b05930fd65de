// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"
)

func TestIssueCommand_List(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "issue")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	for _, want := range []string{"alias-config-missing", "plugin-not-found", "config-load-failed"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestIssueCommand_Render(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := runCLI(t, "issue", "plugin-not-found", "--style", "notty")
	if err != nil {
		t.Fatalf("issue failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "Plugin not found") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestIssueCommand_Unknown(t *testing.T) {
	t.Parallel()

	_, stderr, err := runCLI(t, "issue", "no-such-issue")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want *ExitError", err)
	}
	if !strings.Contains(stderr, `unknown issue "no-such-issue"`) {
		t.Errorf("stderr = %q", stderr)
	}
}
