package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"loupe/internal/browse"
	"loupe/internal/doc"
)

// Config captures runtime configuration for the application.
type Config struct {
	Start     string
	Width     int
	Height    int
	Footer    bool
	PageMode  doc.PageMode
	Bookmarks []browse.Bookmark

	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envWidth      = "LOUPE_WIDTH"
	envHeight     = "LOUPE_HEIGHT"
	envShowFooter = "LOUPE_FOOTER"
	envVerbose    = "LOUPE_VERBOSE"
	envTrace      = "LOUPE_TRACE"
	envLogFile    = "LOUPE_LOG_FILE"
	envPageMode   = "LOUPE_PAGE_MODE"
	envConfigDir  = "XDG_CONFIG_HOME"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("loupe", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "log navigation events")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	pageMode := fs.String("page-mode", envOrDefault(env, envPageMode, "single"), "document page layout: single, deo, or doe")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	start := ""
	if rest := fs.Args(); len(rest) > 0 {
		start = rest[0]
	}

	cfg := Config{
		Start:     start,
		Width:     *width,
		Height:    *height,
		Footer:    *footer,
		PageMode:  doc.ParsePageMode(*pageMode),
		Bookmarks: loadBookmarks(env),
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"trace":    strconv.FormatBool(*trace),
			"verbose":  strconv.FormatBool(*verbose),
			"logFile":  *logFile,
			"pageMode": *pageMode,
			"start":    start,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// bookmarksFile is the on-disk layout of the bookmarks list.
type bookmarksFile struct {
	Bookmarks []browse.Bookmark `json:"bookmarks"`
}

// BookmarksPath returns the bookmarks file location under the user config
// directory.
func BookmarksPath(env map[string]string) string {
	base := env[envConfigDir]
	if base == "" {
		home := env["HOME"]
		if home == "" {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "loupe", "loupe.json")
}

// loadBookmarks reads the saved bookmarks, falling back to the standard user
// folders when the file is absent or unreadable.
func loadBookmarks(env map[string]string) []browse.Bookmark {
	path := BookmarksPath(env)
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var file bookmarksFile
			if err := json.Unmarshal(data, &file); err == nil {
				return file.Bookmarks
			}
		}
	}
	return defaultBookmarks(env["HOME"])
}

func defaultBookmarks(home string) []browse.Bookmark {
	if home == "" {
		return nil
	}
	return []browse.Bookmark{
		{Name: "Home", Folder: home},
		{Name: "Pictures", Folder: filepath.Join(home, "Pictures")},
		{Name: "Documents", Folder: filepath.Join(home, "Documents")},
		{Name: "Downloads", Folder: filepath.Join(home, "Downloads")},
	}
}

// SaveBookmarks writes the bookmarks list, creating the config directory as
// needed.
func SaveBookmarks(env map[string]string, marks []browse.Bookmark) error {
	path := BookmarksPath(env)
	if path == "" {
		return fmt.Errorf("no config directory available")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(bookmarksFile{Bookmarks: marks}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ParseEnv exposes the environment map used for bookmark resolution.
func ParseEnv(environ []string) map[string]string {
	return parseEnv(environ)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}
