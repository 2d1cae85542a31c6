// Package editor launches the user's preferred text editor, used by
// `crashcheck config edit` to open the config file.
package editor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/vacrashmap/crashcheck/internal/errors"
)

// Open launches the user's preferred editor on path and waits for it to
// exit. The editor inherits the caller's terminal.
func Open(path string) error {
	editorCmd := detectEditor()

	fmt.Printf("Location: %s\n", path)

	cmd := exec.Command(editorCmd, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", editorCmd)
	}

	return nil
}

// detectEditor returns the editor command to use. Fallback chain:
// $EDITOR, $VISUAL, nano if installed, then vi.
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}

	return "vi"
}
