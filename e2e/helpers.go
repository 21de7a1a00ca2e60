package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildPlagscanBinary compiles cmd/plagscan into a temporary directory
func buildPlagscanBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "plagscan")

	// Build from the project root, one level up from the e2e directory
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/plagscan")
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build plagscan binary: %v\n%s", err, out)
	}
	return binaryPath
}

func createSourceFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}
	return filePath
}

// runResult captures one invocation of the binary
type runResult struct {
	stdout   string
	stderr   string
	exitCode int
}

// runPlagscan runs the binary in dir with an isolated HOME and optional stdin
func runPlagscan(t *testing.T, binaryPath, dir, stdin string, args ...string) runResult {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+dir, "PLAGSCAN_NO_PROGRESS=1")
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := runResult{stdout: stdout.String(), stderr: stderr.String()}
	if exitErr, ok := err.(*exec.ExitError); ok {
		res.exitCode = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("Failed to run plagscan: %v", err)
	}
	return res
}
