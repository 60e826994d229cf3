package platform

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// Launch command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
	CmdCommand     = "cmd"
	WindowsCmdFlag = "/c"
	StartCommand   = "start"
)

// OpenApp starts the application at bundlePath using the platform launcher
// command. The call returns once the launcher command itself finishes; it
// does not wait for, or own, the launched process.
func OpenApp(bundlePath string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case OSDarwin:
		cmd = exec.Command(OpenCommand, bundlePath)
	case OSLinux:
		cmd = exec.Command(XDGOpenCommand, bundlePath)
	case OSWindows:
		cmd = exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", bundlePath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			return fmt.Errorf("failed to launch app at %s: %w", bundlePath, err)
		}
		return fmt.Errorf("failed to launch app at %s: %s", bundlePath, detail)
	}

	return nil
}
