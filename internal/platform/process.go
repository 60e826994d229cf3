package platform

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/ytget/app-launcher/internal/model"
)

// Process matching fragments
const (
	BundleExecutableDir = "/contents/macos/"
	SidecarMarker       = "/backend-sidecar"
)

// ProcessSnapshot holds the command lines of all visible processes at one
// point in time. One snapshot serves a whole batched status query, so the
// process table is read once per refresh, not once per app.
type ProcessSnapshot struct {
	commands []string
}

// TakeProcessSnapshot reads the current process table. Individual processes
// that cannot be inspected (permissions, races with exiting PIDs) are
// skipped rather than failing the snapshot.
func TakeProcessSnapshot() ProcessSnapshot {
	procs, err := process.Processes()
	if err != nil {
		return ProcessSnapshot{}
	}

	commands := make([]string, 0, len(procs))
	for _, p := range procs {
		cmdline, err := p.Cmdline()
		if err != nil || strings.TrimSpace(cmdline) == "" {
			continue
		}
		commands = append(commands, cmdline)
	}

	return ProcessSnapshot{commands: commands}
}

// SnapshotFromCommands builds a snapshot from raw command lines. Used by
// tests and anywhere a pre-collected process list is available.
func SnapshotFromCommands(commands []string) ProcessSnapshot {
	return ProcessSnapshot{commands: commands}
}

// AppRunning reports whether an app with the given bundle path has a live
// main process in the snapshot.
func (s ProcessSnapshot) AppRunning(bundlePath string) bool {
	bundleName := model.BundleName(bundlePath)
	if bundleName == "" {
		return false
	}
	for _, command := range s.commands {
		if isLaunchableAppProcessLine(command, bundleName) {
			return true
		}
	}
	return false
}

// isLaunchableAppProcessLine matches a process command line against a bundle
// name. The executable must live under <bundle>.app/Contents/MacOS/ (matched
// case-insensitively, anywhere on disk) and sidecar helper processes do not
// count as the app itself.
func isLaunchableAppProcessLine(commandLine, bundleName string) bool {
	normalized := strings.ToLower(strings.TrimSpace(commandLine))
	if normalized == "" {
		return false
	}

	segment := strings.ToLower("/" + bundleName + model.AppBundleSuffix + BundleExecutableDir)
	if !strings.Contains(normalized, segment) {
		return false
	}

	return !strings.Contains(normalized, SidecarMarker)
}
