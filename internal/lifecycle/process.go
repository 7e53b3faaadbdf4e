package lifecycle

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

type managedProcess struct {
	name string
	cmd  *exec.Cmd
}

// startManagedProcess launches bin in its own process group so that child
// processes (the JVM LanguageTool forks) die with it.
func startManagedProcess(name, bin string, args ...string) (*managedProcess, error) {
	cmd := exec.Command(bin, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &managedProcess{name: name, cmd: cmd}, nil
}

// stopManagedProcess sends SIGTERM to the process group and escalates to
// SIGKILL after a grace period.
func stopManagedProcess(p *managedProcess) {
	if p == nil || p.cmd == nil || p.cmd.Process == nil {
		return
	}

	pid := p.cmd.Process.Pid
	if pid <= 0 {
		return
	}

	_ = syscall.Kill(-pid, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		_, _ = p.cmd.Process.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(3 * time.Second):
	}

	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

// startLanguageTool tries the installed server binary, then the CLI in HTTP
// mode, then a bare JVM pointed at LANGUAGETOOL_JAR.
func startLanguageTool(port, jar string) (*managedProcess, error) {
	if serverBin, err := resolveBinaryPath("languagetool-server"); err == nil {
		return startManagedProcess("languagetool-server", serverBin, "--port", port)
	}

	if cliBin, err := resolveBinaryPath("languagetool"); err == nil {
		return startManagedProcess("languagetool", cliBin, "--http", "--port", port)
	}

	if jar == "" {
		return nil, fmt.Errorf("languagetool binary missing and LANGUAGETOOL_JAR not set")
	}
	javaBin, err := resolveBinaryPath("java")
	if err != nil {
		return nil, fmt.Errorf("java not found while trying LANGUAGETOOL_JAR path")
	}
	return startManagedProcess("languagetool-java", javaBin, "-cp", jar, "org.languagetool.server.HTTPServer", "--port", port)
}

func resolveBinaryPath(name string) (string, error) {
	if p, err := exec.LookPath(name); err == nil {
		return p, nil
	}

	if strings.TrimSpace(os.Getenv("WA_DISABLE_SYSTEM_BIN_FALLBACK")) == "1" {
		return "", fmt.Errorf("%s not found", name)
	}

	paths := []string{
		"/opt/homebrew/bin/" + name,
		"/usr/local/bin/" + name,
	}
	for _, p := range paths {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s not found", name)
}

func isHTTPAlive(url string, timeout time.Duration) bool {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 500
}

func waitForHTTP(url string, d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if isHTTPAlive(url, 2*time.Second) {
			return
		}
		time.Sleep(900 * time.Millisecond)
	}
}
