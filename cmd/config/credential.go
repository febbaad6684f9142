package config

import (
	"fmt"
	"os"
	"strings"
)

// CredentialError is a user-facing configuration failure: the operator must
// supply a valid key file before the action can be retried. It is fatal to
// the triggered action only, never to the process.
type CredentialError struct {
	Path   string
	Reason string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("credential file %s: %s", e.Path, e.Reason)
}

// LoadAPIKey reads the API key from a plain-text file, trimmed of
// surrounding whitespace. Called once per top-level action.
func LoadAPIKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &CredentialError{Path: path, Reason: "missing, please add your Odds API key"}
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", &CredentialError{Path: path, Reason: "empty, please add your Odds API key"}
	}

	return key, nil
}
