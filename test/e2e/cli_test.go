// Package e2e provides end-to-end tests for the errkit binary.
//
// These tests build cmd/errkit and run it as a subprocess with an isolated
// HOME, so no user configuration leaks in.
//
// Run with: go test -v ./test/e2e/...
// Skip with: go test -short ./...
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var binary string

// skipIfShort skips the test if running in short mode.
func skipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
}

// skipIfNoBinary skips the test if the errkit binary could not be built.
func skipIfNoBinary(t *testing.T) {
	if binary == "" {
		t.Skip("skipping: errkit binary not built (go toolchain unavailable)")
	}
}

func command(ctx context.Context, t *testing.T, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	cmd.Dir = t.TempDir()
	return cmd
}

// runErrkit runs errkit and returns its output.
func runErrkit(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runErrkitAllowFail(t, args...)
	if err != nil {
		t.Fatalf("errkit %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErrkitAllowFail runs errkit and returns output even if it fails.
func runErrkitAllowFail(t *testing.T, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cmd := command(ctx, t, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String() + stderr.String(), err
}

// waitForCondition polls until a condition is met or timeout.
func waitForCondition(t *testing.T, timeout time.Duration, poll time.Duration, condition func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(poll)
	}
	t.Fatalf("timeout waiting for: %s", msg)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()
	return addr
}

func TestCodesList(t *testing.T) {
	skipIfShort(t)
	skipIfNoBinary(t)

	output := runErrkit(t, "codes", "list")
	for _, want := range []string{"SYS_001", "CLI_001"} {
		if !strings.Contains(output, want) {
			t.Errorf("codes list missing %s: %s", want, output)
		}
	}
}

func TestCodesCheckReportsConflict(t *testing.T) {
	skipIfShort(t)
	skipIfNoBinary(t)

	dir := t.TempDir()
	catalog := filepath.Join(dir, "dup.yaml")
	if err := os.WriteFile(catalog, []byte("category: Dup\ncodes:\n  - value: SYS_001\n    description: again\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	output, err := runErrkitAllowFail(t, "codes", "check", catalog)
	if err == nil {
		t.Fatalf("expected failure, got: %s", output)
	}
	if !strings.Contains(output, "is invalid") {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestProblem(t *testing.T) {
	skipIfShort(t)
	skipIfNoBinary(t)

	output := runErrkit(t, "problem", "SYS_001", "--status", "503", "--context", "region=eu")

	var doc map[string]any
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("problem output is not JSON: %v\n%s", err, output)
	}
	if doc["status"] != float64(503) {
		t.Errorf("status = %v, want 503", doc["status"])
	}
	if doc["title"] != "An unhandled error occurred." {
		t.Errorf("title = %v", doc["title"])
	}
}

func TestServe(t *testing.T) {
	skipIfShort(t)
	skipIfNoBinary(t)

	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := command(ctx, t, "serve", "--addr", addr)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Start(); err != nil {
		t.Fatalf("start serve: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		_ = cmd.Wait()
	})

	base := fmt.Sprintf("http://%s", addr)
	waitForCondition(t, 30*time.Second, 200*time.Millisecond, func() bool {
		resp, err := http.Get(base + "/codes")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, "server to accept requests")

	resp, err := http.Get(base + "/codes/NOPE")
	if err != nil {
		t.Fatalf("GET /codes/NOPE: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q", ct)
	}
}

// TestMain builds the errkit binary once for all tests.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "errkit-e2e")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	path := filepath.Join(dir, "errkit")
	build := exec.Command("go", "build", "-o", path, "../../cmd/errkit")
	if out, err := build.CombinedOutput(); err == nil {
		binary = path
	} else {
		fmt.Fprintf(os.Stderr, "build errkit: %v\n%s", err, out)
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}
