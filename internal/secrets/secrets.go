// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads form credentials from a directory of plain-text files.
// Each file in the directory is one secret: the filename is the key and the
// trimmed contents are the value.
//
// Recognised keys: form-password (the password for forms that declare a
// password field) and form-<id>-<field> (a text field value for one form).
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PasswordKey holds the password sent with forms that take one.
const PasswordKey = "form-password"

// Set is a loaded collection of secrets.
type Set map[string]string

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty Set. Unreadable files are reported to warn and skipped.
func Load(dir string, warn io.Writer) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}
	if warn == nil {
		warn = io.Discard
	}

	set := make(Set)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			set[name] = value
		}
	}
	return set, nil
}

// FormFields returns the text fields secrets supply for form id. The shared
// form-password is only applied when declared has a "password" key, so it is
// never sent to a form that does not ask for one. A form-<id>-<field> entry
// wins over the shared form-password.
func (s Set) FormFields(id string, declared map[string]string) map[string]string {
	fields := make(map[string]string)
	if _, wants := declared["password"]; wants {
		if v, ok := s[PasswordKey]; ok {
			fields["password"] = v
		}
	}
	prefix := "form-" + id + "-"
	for k, v := range s {
		if field, ok := strings.CutPrefix(k, prefix); ok && field != "" {
			fields[field] = v
		}
	}
	return fields
}
