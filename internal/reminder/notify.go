package reminder

import (
	"fmt"
	"os/exec"
	"runtime"
)

// DesktopNotifier delivers notifications through the platform's native
// mechanism: osascript on macOS, notify-send on Linux.
type DesktopNotifier struct{}

// NewDesktopNotifier returns a notifier for the current platform.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{}
}

// RequestAuthorization reports whether a delivery mechanism is available.
// Absence is the "denied" state: scheduling still succeeds but nothing is
// ever shown.
func (n *DesktopNotifier) RequestAuthorization() bool {
	_, err := exec.LookPath(n.binary())
	return err == nil
}

// Notify shows a notification.
func (n *DesktopNotifier) Notify(title, body string) error {
	var cmd *exec.Cmd
	if runtime.GOOS == "darwin" {
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		cmd = exec.Command("osascript", "-e", script)
	} else {
		cmd = exec.Command("notify-send", title, body)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("notify: %w (%s)", err, out)
	}
	return nil
}

func (n *DesktopNotifier) binary() string {
	if runtime.GOOS == "darwin" {
		return "osascript"
	}
	return "notify-send"
}
