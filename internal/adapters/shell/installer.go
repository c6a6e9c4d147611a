// Package shell installs the claude wrapper functions for bash, zsh and fish.
package shell

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/claude-remote-collector/internal/domain"
)

const (
	Marker = "# claude-remote-collector"

	stableDirName = ".claude-remote-collector"
	scriptPrefix  = "claude-wrapper."
	scriptMode    = 0o644
	dirMode       = 0o755
	allShells     = "all"
)

//go:embed scripts/claude-wrapper.*
var scripts embed.FS

type Shell string

const (
	Fish Shell = "fish"
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
)

// Shells is the order used for "all" and for status output.
var Shells = []Shell{Fish, Bash, Zsh}

// Targets resolves a shell name or "all".
func Targets(name string) ([]Shell, error) {
	if name == allShells {
		return Shells, nil
	}
	for _, shell := range Shells {
		if string(shell) == name {
			return []Shell{shell}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s (choose fish, bash, zsh or all)", domain.ErrUnsupportedShell, name)
}

type Status struct {
	Shell     Shell
	Installed bool
	// Path is the rc file or function file that carries the wrapper.
	Path string
}

func (s Status) String() string {
	if s.Installed {
		return label(s.Shell) + "Installed"
	}
	return label(s.Shell) + "Not installed"
}

type Installer struct {
	home string
}

func NewInstaller(home string) (*Installer, error) {
	if strings.TrimSpace(home) == "" {
		return nil, errors.New("home directory is empty")
	}

	return &Installer{home: filepath.Clean(home)}, nil
}

// StableDir holds the wrapper copies that rc files source.
func (i *Installer) StableDir() string {
	return filepath.Join(i.home, stableDirName)
}

func (i *Installer) Install(name string) ([]string, error) {
	targets, err := Targets(name)
	if err != nil {
		return nil, err
	}
	if err := i.writeStableScripts(); err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(targets))
	for _, shell := range targets {
		var line string
		if shell == Fish {
			line, err = i.installFish()
		} else {
			line, err = i.addSourceLine(shell)
		}
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func (i *Installer) Uninstall(name string) ([]string, error) {
	targets, err := Targets(name)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(targets))
	for _, shell := range targets {
		var line string
		if shell == Fish {
			line, err = i.uninstallFish()
		} else {
			line, err = i.removeSourceLine(shell)
		}
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func (i *Installer) Status() ([]Status, error) {
	statuses := make([]Status, 0, len(Shells))
	for _, shell := range Shells {
		status := Status{Shell: shell, Path: i.targetPath(shell)}

		if shell == Fish {
			_, err := os.Stat(status.Path)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("inspect %s: %w", status.Path, err)
			}
			status.Installed = err == nil
		} else {
			content, err := readIfExists(status.Path)
			if err != nil {
				return nil, err
			}
			status.Installed = strings.Contains(content, Marker)
		}

		statuses = append(statuses, status)
	}

	return statuses, nil
}

func (i *Installer) targetPath(shell Shell) string {
	switch shell {
	case Fish:
		return filepath.Join(i.home, ".config", "fish", "functions", "claude.fish")
	default:
		return filepath.Join(i.home, "."+string(shell)+"rc")
	}
}

func (i *Installer) scriptPath(shell Shell) string {
	return filepath.Join(i.StableDir(), scriptPrefix+string(shell))
}

func (i *Installer) sourceLine(shell Shell) string {
	return fmt.Sprintf("source %q  %s", i.scriptPath(shell), Marker)
}

func (i *Installer) writeStableScripts() error {
	if err := os.MkdirAll(i.StableDir(), dirMode); err != nil {
		return fmt.Errorf("create wrapper directory: %w", err)
	}

	for _, shell := range Shells {
		data, err := scripts.ReadFile("scripts/" + scriptPrefix + string(shell))
		if err != nil {
			return fmt.Errorf("load %s wrapper: %w", shell, err)
		}
		if err := os.WriteFile(i.scriptPath(shell), data, scriptMode); err != nil {
			return fmt.Errorf("write %s wrapper: %w", shell, err)
		}
	}

	return nil
}

func (i *Installer) installFish() (string, error) {
	dest := i.targetPath(Fish)
	if err := os.MkdirAll(filepath.Dir(dest), dirMode); err != nil {
		return "", fmt.Errorf("create fish functions directory: %w", err)
	}

	data, err := os.ReadFile(i.scriptPath(Fish))
	if err != nil {
		return "", fmt.Errorf("read fish wrapper: %w", err)
	}
	if err := os.WriteFile(dest, data, scriptMode); err != nil {
		return "", fmt.Errorf("install fish wrapper: %w", err)
	}

	return label(Fish) + "Installed: " + dest, nil
}

func (i *Installer) uninstallFish() (string, error) {
	dest := i.targetPath(Fish)
	if err := os.Remove(dest); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return label(Fish) + "Not installed", nil
		}
		return "", fmt.Errorf("remove fish wrapper: %w", err)
	}

	return label(Fish) + "Removed: " + dest, nil
}

func (i *Installer) addSourceLine(shell Shell) (string, error) {
	rc := i.targetPath(shell)
	content, err := readIfExists(rc)
	if err != nil {
		return "", err
	}
	if strings.Contains(content, Marker) {
		return label(shell) + "Already configured in " + rc, nil
	}

	f, err := os.OpenFile(rc, os.O_APPEND|os.O_CREATE|os.O_WRONLY, scriptMode)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", rc, err)
	}
	if _, err := f.WriteString("\n" + i.sourceLine(shell) + "\n"); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("append to %s: %w", rc, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", rc, err)
	}

	return label(shell) + "Added source line to " + rc, nil
}

func (i *Installer) removeSourceLine(shell Shell) (string, error) {
	rc := i.targetPath(shell)
	content, err := readIfExists(rc)
	if err != nil {
		return "", err
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if !strings.Contains(line, Marker) {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return label(shell) + "Not installed", nil
	}

	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
	}

	info, err := os.Stat(rc)
	if err != nil {
		return "", fmt.Errorf("inspect %s: %w", rc, err)
	}
	if err := os.WriteFile(rc, []byte(strings.Join(kept, "\n")+"\n"), info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("rewrite %s: %w", rc, err)
	}

	return label(shell) + "Removed source line from " + rc, nil
}

// label pads "[shell]" so the messages line up in a column.
func label(shell Shell) string {
	return fmt.Sprintf("%-8s", "["+string(shell)+"]")
}

func readIfExists(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return string(data), nil
}
