//go:build basic || database

package integration

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedBinaryPath holds the path to a partnerscore binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBinary returns the path to the partnerscore binary, building it once if needed.
func getBinary() string {
	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "partnerscore-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binPath := filepath.Join(tempDir, "partnerscore")
		buildCmd := exec.Command("go", "build", "-o", binPath, ".")
		buildCmd.Dir = ".." // Build from project root
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build partnerscore: %v\n%s", err, out))
		}

		sharedBinaryPath = binPath
	})

	return sharedBinaryPath
}

// runCLI runs partnerscore with extra environment and returns stdout.
// Stderr is logged when the command fails.
func runCLI(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = t.TempDir() // keep any .partnerscore.yaml in the repo out of the run
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.Output()
	if err != nil {
		var stderr []byte
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr = exitErr.Stderr
		}
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), out, stderr)
	}
	return string(out), err
}

// partnersCSV is a small export with aliased headers and display-form values.
const partnersCSV = `Partner Name,Tier,Revenue,Win Rate (%),CSAT,Technical Capability,Market Coverage
Acme Corp,Gold,"$900,000",48%,93,Certified center of excellence,Global
Globex,Silver,"$40,000",8%,55,Basic product knowledge,Single city
Initech,Bronze,"$200,000",25%,82,Can deploy with vendor support,National
`

// writePartnersCSV writes partnersCSV into a temp file and returns its path.
func writePartnersCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "partners.csv")
	if err := os.WriteFile(path, []byte(partnersCSV), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
