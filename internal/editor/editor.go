package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Session is a note staged in a temp file for an external editor.
type Session struct {
	Path    string
	initial string
}

// Prepare writes initialContent to a fresh temp file. Callers must Cleanup.
func Prepare(initialContent string) (*Session, error) {
	tmp, err := os.CreateTemp("", "calnotes-*.md")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.WriteString(initialContent); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("closing temp file: %w", err)
	}
	return &Session{Path: tmp.Name(), initial: initialContent}, nil
}

// Command builds the editor process for the session without starting it.
// editorCmd may carry arguments, e.g. "code --wait".
func (s *Session) Command(editorCmd string) (*exec.Cmd, error) {
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty editor command")
	}
	args := append(parts[1:], s.Path)
	return exec.Command(parts[0], args...), nil
}

// Result reads the edited file. changed is false when the trimmed text
// matches the initial content; an emptied file counts as a change.
func (s *Session) Result() (content string, changed bool, err error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}
	result := strings.TrimSpace(string(data))
	if result == strings.TrimSpace(s.initial) {
		return s.initial, false, nil
	}
	return result, true, nil
}

// Cleanup removes the temp file.
func (s *Session) Cleanup() {
	os.Remove(s.Path)
}

// Edit opens initialContent in an editor attached to the terminal and
// returns the trimmed result.
func Edit(editorCmd string, initialContent string) (content string, changed bool, err error) {
	s, err := Prepare(initialContent)
	if err != nil {
		return "", false, err
	}
	defer s.Cleanup()

	cmd, err := s.Command(editorCmd)
	if err != nil {
		return "", false, err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}
	return s.Result()
}
