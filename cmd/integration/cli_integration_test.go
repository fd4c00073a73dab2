package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildCLI compiles the relbump binary from the module root.
func buildCLI(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "relbump")
	buildCmd := exec.Command("go", "build", "-o", binPath, "../../")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build CLI binary: %v; build output: %s", err, out)
	}
	return binPath
}

func TestCLIBinaryConfigTargets(t *testing.T) {
	binPath := buildCLI(t)

	project := t.TempDir()
	docs := filepath.Join(project, "docs")
	if err := os.MkdirAll(docs, 0755); err != nil {
		t.Fatal(err)
	}
	usage := "Run `java -jar coroutines-agent-0.1.0.jar` against your classes.\n"
	if err := os.WriteFile(filepath.Join(docs, "usage.md"), []byte(usage), 0644); err != nil {
		t.Fatal(err)
	}
	config := `artifact = "coroutines-agent"

[[target]]
path = "docs/usage.md"
rules = ["jar"]
`
	configPath := filepath.Join(t.TempDir(), "release.toml")
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	// Dry run first: nothing changes on disk.
	cmd := exec.Command(binPath, "--config", configPath, "-C", project, "--dry", "0.2.0")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("dry run failed: %v; stderr: %s", err, stderr.String())
	}
	if !strings.Contains(stdout.String(), "coroutines-agent-0.2.0.jar") {
		t.Errorf("dry run did not echo rewritten text:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Dry run complete") {
		t.Errorf("expected dry run summary on stderr:\n%s", stderr.String())
	}
	got, err := os.ReadFile(filepath.Join(docs, "usage.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != usage {
		t.Errorf("dry run modified docs/usage.md:\n%s", got)
	}

	// Real run.
	cmd = exec.Command(binPath, "--config", configPath, "-C", project, "0.2.0")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("CLI failed: %v; output: %s", err, out)
	}
	got, err = os.ReadFile(filepath.Join(docs, "usage.md"))
	if err != nil {
		t.Fatal(err)
	}
	if want := strings.ReplaceAll(usage, "0.1.0", "0.2.0"); string(got) != want {
		t.Errorf("docs/usage.md = %q, expected %q", got, want)
	}
}

func TestCLIBinaryBadConfig(t *testing.T) {
	binPath := buildCLI(t)

	project := t.TempDir()
	if err := os.WriteFile(filepath.Join(project, "relbump.toml"), []byte("[[target]]\npath = \"readme.md\"\nrules = [\"changelog\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cmd := exec.Command(binPath, "2.5.0")
	cmd.Dir = project
	out, err := cmd.CombinedOutput()
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit status 1 for a bad config, got %v; output: %s", err, out)
	}
	if !strings.Contains(string(out), "unknown rule") {
		t.Errorf("expected unknown rule error, got:\n%s", out)
	}
}
