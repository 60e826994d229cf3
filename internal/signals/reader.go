package signals

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ytget/app-launcher/internal/model"
)

// Signal file naming
const (
	SignalFileSuffix = "-signals.jsonl"
)

// Signal is the latest reading published by an app on the signal bus.
type Signal struct {
	Value     float64 `json:"value"`
	Timestamp string  `json:"timestamp"`
	Label     string  `json:"label"`
}

// Reader reads per-app signal files from a shared bus directory. Each app
// appends JSON lines to <bundle-name>-signals.jsonl; only the last non-blank
// line counts. Any read or parse failure yields "no signal" for that app,
// never an error: signals are best-effort decoration.
type Reader struct {
	mu     sync.RWMutex
	busDir string
	logger zerolog.Logger
}

// NewReader creates a signal reader over busDir.
func NewReader(busDir string, logger zerolog.Logger) *Reader {
	return &Reader{
		busDir: busDir,
		logger: logger.With().Str("component", "signals").Logger(),
	}
}

// SetBusDir points the reader at a different bus directory, taking effect on
// the next read.
func (r *Reader) SetBusDir(busDir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.busDir = busDir
}

// ReadFor returns the latest signal for the app at bundlePath, if one exists.
func (r *Reader) ReadFor(bundlePath string) (Signal, bool) {
	bundleName := model.BundleName(bundlePath)
	if bundleName == "" {
		return Signal{}, false
	}

	r.mu.RLock()
	busDir := r.busDir
	r.mu.RUnlock()

	fileName := strings.ToLower(bundleName) + SignalFileSuffix
	line, ok := lastNonBlankLine(filepath.Join(busDir, fileName))
	if !ok {
		return Signal{}, false
	}

	signal, ok := parseSignalLine(line)
	if !ok {
		r.logger.Debug().Str("file", fileName).Msg("unparseable signal line")
	}
	return signal, ok
}

// ReadAll returns the latest signal for each of the given apps, keyed by
// identity.
func (r *Reader) ReadAll(apps []model.RegisteredApp) map[string]Signal {
	result := make(map[string]Signal)
	for _, app := range apps {
		if signal, ok := r.ReadFor(app.Path); ok {
			result[model.IdentityKey(app.Path)] = signal
		}
	}
	return result
}

// lastNonBlankLine scans the file and returns its last non-blank line.
func lastNonBlankLine(path string) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	var last string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			last = line
		}
	}
	if scanner.Err() != nil || last == "" {
		return "", false
	}
	return last, true
}

// parseSignalLine decodes one JSONL record. All three fields are required.
func parseSignalLine(line string) (Signal, bool) {
	var parsed struct {
		Value     *float64 `json:"value"`
		Timestamp *string  `json:"timestamp"`
		Label     *string  `json:"label"`
	}
	if err := json.Unmarshal([]byte(line), &parsed); err != nil {
		return Signal{}, false
	}
	if parsed.Value == nil || parsed.Timestamp == nil || parsed.Label == nil {
		return Signal{}, false
	}

	return Signal{
		Value:     *parsed.Value,
		Timestamp: *parsed.Timestamp,
		Label:     *parsed.Label,
	}, true
}
