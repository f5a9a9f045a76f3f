package config

import (
	"strings"
)

// DefaultsContent returns the embedded defaults file, comments included.
func DefaultsContent() string {
	return string(defaultSettings)
}

// GenerateSettingsContent returns the defaults with every value commented
// out, ready to be saved as a settings file.
func GenerateSettingsContent() string {
	return commentOutSettingValues(DefaultsContent())
}

// commentOutSettingValues takes YAML content and comments out every line
// holding a value. Blank lines, comments and top-level section headers
// (e.g. "compiler:") are kept.
func commentOutSettingValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Keep blank lines as-is
		if trimmed == "" {
			result = append(result, line)
			continue
		}

		// Keep lines that are already comments
		if strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers
		if line == trimmed && strings.HasSuffix(trimmed, ":") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
