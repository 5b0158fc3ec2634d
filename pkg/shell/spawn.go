// spawn.go
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// SpawnConfig is the immutable description of the shell session to start.
// Only the spawned process's environment is touched; devshell never calls
// os.Setenv on itself.
type SpawnConfig struct {
	Shell   string   // Shell binary; $SHELL or /bin/sh when empty
	Dir     string   // Working directory; inherited when empty
	Environ []string // Complete environment for the session
	Hook    string   // Script run once when the session starts

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Spawn starts a long-lived interactive shell session and blocks until it
// exits. The hook runs inside the session before the first prompt.
func Spawn(ctx context.Context, cfg SpawnConfig) error {
	shellPath := cfg.Shell
	if shellPath == "" {
		shellPath = os.Getenv("SHELL")
	}
	if shellPath == "" {
		shellPath = "/bin/sh"
	}

	cmd, cleanup, err := shellCommand(ctx, shellPath, cfg.Hook)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	cmd.Dir = cfg.Dir
	cmd.Env = cfg.Environ

	cmd.Stdin = cfg.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = cfg.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = cfg.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("shell session: %w", err)
	}
	return nil
}

// shellCommand builds the exec.Cmd for the session. Bash gets the hook via a
// temporary rcfile that still sources the user's own bashrc; other shells run
// the hook with -c before replacing themselves with an interactive instance.
func shellCommand(ctx context.Context, shellPath, hook string) (*exec.Cmd, func(), error) {
	if hook == "" {
		return exec.CommandContext(ctx, shellPath, "-i"), nil, nil
	}

	if filepath.Base(shellPath) == "bash" {
		rcPath, cleanup, err := writeRCFile(hook)
		if err != nil {
			return nil, nil, err
		}
		return exec.CommandContext(ctx, shellPath, "--rcfile", rcPath, "-i"), cleanup, nil
	}

	script := fmt.Sprintf("%s\nexec %s -i", hook, shellPath)
	return exec.CommandContext(ctx, shellPath, "-c", script), nil, nil
}

// writeRCFile writes a temporary rcfile containing the user's bashrc plus the
// manifest hook.
func writeRCFile(hook string) (string, func(), error) {
	f, err := os.CreateTemp("", "devshell-rc-*.sh")
	if err != nil {
		return "", nil, fmt.Errorf("creating rcfile: %w", err)
	}

	var b strings.Builder
	b.WriteString("[ -f ~/.bashrc ] && . ~/.bashrc\n")
	b.WriteString(hook)
	if !strings.HasSuffix(hook, "\n") {
		b.WriteString("\n")
	}

	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("writing rcfile: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("closing rcfile: %w", err)
	}

	cleanup := func() { os.Remove(f.Name()) }
	return f.Name(), cleanup, nil
}
