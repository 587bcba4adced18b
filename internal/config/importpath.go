package config

import (
	"os"
	"strings"
)

// ImportPathEnv is the environment variable §6 specifies: "a
// colon-separated list of directories", consulted after the importing
// module's own directory when resolving a relative import.
const ImportPathEnv = "SUNDER_IMPORT_PATH"

// ImportSearchPath returns the directories named by SUNDER_IMPORT_PATH, in
// order. An unset or empty variable yields no additional search
// directories — relative imports then resolve solely against the
// importing module's directory.
func ImportSearchPath() []string {
	raw := os.Getenv(ImportPathEnv)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ":")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
