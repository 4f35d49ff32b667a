package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetConfigPath determines the configuration file path.
// Priority:
// 1. The path provided by the caller (e.g. from the -config flag);
//    an explicit path that does not exist is an error, never a silent
//    fall-through to discovery
// 2. CCEXTRACT_CONFIG_PATH environment variable
// 3. config.yaml / config.json in the current working directory
// 4. config.yaml / config.json in the executable's directory
func GetConfigPath(configFilePathFlag string) (string, error) {
	if configFilePathFlag != "" {
		if _, err := os.Stat(configFilePathFlag); err != nil {
			return "", fmt.Errorf("config file '%s' cannot be read: %w", configFilePathFlag, err)
		}
		return configFilePathFlag, nil
	}

	envPath := os.Getenv(ConfigPathEnvVar)
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	cwd, errCwd := os.Getwd()
	exePath, errExe := os.Executable()
	exeDir := ""
	if errExe == nil {
		exeDir = filepath.Dir(exePath)
	}

	defaultFiles := []string{DefaultConfigFileNameYAML, DefaultConfigFileNameJSON}
	locations := []string{}

	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if errExe == nil && exeDir != "" && (errCwd != nil || exeDir != cwd) {
		locations = append(locations, exeDir)
	}

	for _, loc := range locations {
		for _, file := range defaultFiles {
			path := filepath.Join(loc, file)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", nil
}
