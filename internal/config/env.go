package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds the settings read from the environment.
type Env struct {
	// Addr is the HTTP listen address. Empty disables the server.
	Addr        string
	DBPath      string
	DepthDir    string
	VideoDevice int
	FPS         int
	Loop        bool
	PluginDir   string
	Tray        bool
	EmitNone    bool
	LogLevel    string
}

// LoadEnv reads .env style files into the process environment, then builds
// an Env. Missing files are ignored. Variables already set win over files.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
	}

	dataDir := defaultDataDir()
	return Env{
		Addr:        getEnv("DEPTHMOUSE_ADDR", ":8080"),
		DBPath:      getEnv("DEPTHMOUSE_DB", filepath.Join(dataDir, "depthmouse.db")),
		DepthDir:    getEnv("DEPTHMOUSE_DEPTH_DIR", filepath.Join(dataDir, "frames")),
		VideoDevice: getEnvAsInt("DEPTHMOUSE_VIDEO_DEVICE", -1),
		FPS:         getEnvAsInt("DEPTHMOUSE_FPS", 30),
		Loop:        getEnvAsBool("DEPTHMOUSE_LOOP", false),
		PluginDir:   getEnv("DEPTHMOUSE_PLUGIN_DIR", filepath.Join(dataDir, "plugins")),
		Tray:        getEnvAsBool("DEPTHMOUSE_TRAY", false),
		EmitNone:    getEnvAsBool("DEPTHMOUSE_EMIT_NONE", false),
		LogLevel:    getEnv("DEPTHMOUSE_LOG_LEVEL", "info"),
	}, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".depthmouse"
	}
	return filepath.Join(home, ".depthmouse")
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
