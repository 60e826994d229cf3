package platform

import "testing"

func TestIsLaunchableAppProcessLine(t *testing.T) {
	// matches the bundle executable dir regardless of install location or case
	line := "/Users/dev/companion/target/release/bundle/macos/companion.app/Contents/MacOS/app"
	if !isLaunchableAppProcessLine(line, "Companion") {
		t.Error("Expected case-insensitive match for relocated bundle")
	}

	if isLaunchableAppProcessLine("/Applications/Dugout.app/Contents/MacOS/backend-sidecar", "Dugout") {
		t.Error("Expected sidecar process to be ignored")
	}

	if isLaunchableAppProcessLine("/Applications/Dugout.app/Contents/MacOS/backend-sidecar --port 7001", "Dugout") {
		t.Error("Expected sidecar process with arguments to be ignored")
	}

	if isLaunchableAppProcessLine("/Applications/Dugout.app/Contents/MacOS/app", "Companion") {
		t.Error("Expected no cross-match between different bundles")
	}

	if isLaunchableAppProcessLine("", "Companion") {
		t.Error("Expected empty command line to never match")
	}
}

func TestSnapshotAppRunning(t *testing.T) {
	snapshot := SnapshotFromCommands([]string{
		"/Applications/Dugout.app/Contents/MacOS/backend-sidecar",
		"/Users/dev/companion/target/release/bundle/macos/companion.app/Contents/MacOS/app",
	})

	if !snapshot.AppRunning("/Applications/Companion.app") {
		t.Error("Expected Companion to be reported running")
	}

	if snapshot.AppRunning("/Applications/Dugout.app") {
		t.Error("Expected Dugout to be reported not running (only sidecar alive)")
	}

	if snapshot.AppRunning("") {
		t.Error("Expected empty path to be reported not running")
	}
}

func TestSnapshotSupportsBundleNamesWithSpaces(t *testing.T) {
	snapshot := SnapshotFromCommands([]string{
		"/Applications/HM Admin Console.app/Contents/MacOS/app",
	})

	if !snapshot.AppRunning("/Applications/HM Admin Console.app") {
		t.Error("Expected bundle names with spaces to match")
	}
}
