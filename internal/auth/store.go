package auth

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

const credentialFileName = ".expense_tracker_credentials"

// CredentialFile persists the obfuscated remember-me token at a fixed path,
// readable and writable by the owner only. All I/O failures are logged and
// swallowed: a broken cache must never block a login.
type CredentialFile struct {
	Path string
}

// DefaultCredentialFile places the cache in the user's home directory,
// falling back to the working directory when the home cannot be resolved.
func DefaultCredentialFile() CredentialFile {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("Cannot resolve home directory for credential cache", "error", err)
		return CredentialFile{Path: credentialFileName}
	}
	return CredentialFile{Path: filepath.Join(home, credentialFileName)}
}

// Save writes the obfuscated token and restricts the file to owner
// read/write.
func (f CredentialFile) Save(username, password string) {
	token := ObfuscateCredentials(username, password)
	if err := os.WriteFile(f.Path, []byte(token), 0o600); err != nil {
		slog.Warn("Failed to save remembered credentials", "path", f.Path, "error", err)
		return
	}
	if err := os.Chmod(f.Path, 0o600); err != nil {
		slog.Warn("Failed to restrict credential file permissions", "path", f.Path, "error", err)
	}
}

// Load returns the remembered pair, or empty strings when the file is
// missing, unreadable, or holds a malformed token.
func (f CredentialFile) Load() (username, password string) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("Failed to load remembered credentials", "path", f.Path, "error", err)
		}
		return "", ""
	}
	username, password, err = DeobfuscateCredentials(string(data))
	if err != nil {
		slog.Warn("Discarding malformed credential token", "path", f.Path, "error", err)
		return "", ""
	}
	return username, password
}

// Clear deletes the cache file if present.
func (f CredentialFile) Clear() {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to clear remembered credentials", "path", f.Path, "error", err)
	}
}
