package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
	"github.com/creack/pty"
)

// buildSpyglass builds the spyglass binary for testing.
// Returns the path to the binary and a cleanup function.
func buildSpyglass(t *testing.T) (string, func()) {
	t.Helper()
	dir := t.TempDir()
	binPath := filepath.Join(dir, "spyglass")

	rootDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	// Assume we are in test/e2e, go up 2 levels
	rootDir = filepath.Join(rootDir, "..", "..")

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/spyglass")
	cmd.Dir = rootDir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}

	return binPath, func() { os.RemoveAll(dir) }
}

func TestE2E_Typeahead(t *testing.T) {
	binPath, cleanup := buildSpyglass(t)
	defer cleanup()

	backend := stubBackend()
	defer backend.Close()

	// Fresh home directory so the test never touches real data.
	homeDir := t.TempDir()
	if err := seedHistory(homeDir); err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}

	cmd := exec.Command(binPath)
	cmd.Env = append(os.Environ(),
		"HOME="+homeDir,
		"SPYGLASS_SEARCH_URL="+backend.URL+"/api/search",
		"SPYGLASS_RESULTS_URL=https://inv.example/search",
	)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		t.Fatalf("failed to start pty: %v", err)
	}
	defer func() {
		_ = ptmx.Close()
		_ = cmd.Process.Kill()
	}()

	if err := pty.Setsize(ptmx, &pty.Winsize{Cols: 120, Rows: 40}); err != nil {
		t.Fatalf("failed to set pty size: %v", err)
	}

	var outputBuf bytes.Buffer
	console, err := expect.NewConsole(
		expect.WithStdin(ptmx),
		expect.WithStdout(&outputBuf),
		expect.WithDefaultTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("failed to create console: %v", err)
	}
	defer console.Close()

	// 1. Startup: header plus the seeded recent panel.
	t.Log("Waiting for startup...")
	if _, err := console.ExpectString("spyglass"); err != nil {
		dumpLogs(t, homeDir)
		t.Fatalf("startup header not found: %v\nScreen:\n%s", err, outputBuf.String())
	}
	if _, err := console.ExpectString("hex bolt"); err != nil {
		t.Fatalf("seeded recent query not shown: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// 2. Type a query; after the debounce window the dropdown appears.
	time.Sleep(500 * time.Millisecond) // Allow UI to stabilize
	t.Log("Typing 'widget'...")
	if _, err := console.Send("widget"); err != nil {
		t.Fatalf("failed to send query: %v", err)
	}

	t.Log("Waiting for grouped results...")
	if _, err := console.ExpectString("Catalog"); err != nil {
		dumpLogs(t, homeDir)
		t.Fatalf("catalog section not found: %v\nScreen:\n%s", err, outputBuf.String())
	}
	if _, err := console.ExpectString("Blue Widget"); err != nil {
		t.Fatalf("catalog row not found: %v\nScreen:\n%s", err, outputBuf.String())
	}
	if _, err := console.ExpectString("Sales"); err != nil {
		t.Fatalf("sales section not found: %v\nScreen:\n%s", err, outputBuf.String())
	}

	// 3. Escape dismisses the dropdown but keeps the text.
	t.Log("Sending Escape...")
	if _, err := console.Send("\x1b"); err != nil {
		t.Fatalf("failed to send escape: %v", err)
	}
	time.Sleep(300 * time.Millisecond)

	// 4. Quit.
	t.Log("Sending ctrl+c...")
	if _, err := console.Send("\x03"); err != nil {
		t.Fatalf("failed to send ctrl+c: %v", err)
	}

	done := make(chan error)
	go func() { done <- cmd.Wait() }()
	select {
	case <-done:
		t.Log("Process exited successfully")
	case <-time.After(2 * time.Second):
		t.Error("Process did not exit after ctrl+c")
	}
}

func dumpLogs(t *testing.T, homeDir string) {
	t.Helper()
	logDir := filepath.Join(homeDir, ".spyglass", "logs")
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if logs, err := os.ReadFile(filepath.Join(logDir, e.Name())); err == nil {
			t.Logf("%s:\n%s", e.Name(), logs)
		}
	}
}
