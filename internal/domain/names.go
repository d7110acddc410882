package domain

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const (
	maxIndexNameLen     = 45
	maxNamespaceNameLen = 512
)

var indexNamePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ValidateIndexName checks an index name: lowercase letters, digits and
// hyphens, starting and ending with a letter or digit.
func ValidateIndexName(name string) error {
	if name == "" {
		return errors.Wrap(ErrInvalidName, "index name is required")
	}
	if len(name) > maxIndexNameLen {
		return errors.Wrapf(ErrInvalidName, "index name %q exceeds %d characters", name, maxIndexNameLen)
	}
	if !indexNamePattern.MatchString(name) {
		return errors.Wrapf(ErrInvalidName, "index name %q must be lowercase alphanumeric or '-'", name)
	}
	return nil
}

// ValidateNamespaceName checks a namespace name: printable ASCII, not blank.
func ValidateNamespaceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(ErrInvalidName, "namespace name is required")
	}
	if len(name) > maxNamespaceNameLen {
		return errors.Wrapf(ErrInvalidName, "namespace name exceeds %d bytes", maxNamespaceNameLen)
	}
	for i := 0; i < len(name); i++ {
		if c := name[i]; c < 0x20 || c > 0x7e {
			return errors.Wrapf(ErrInvalidName, "namespace name %q contains non-printable byte at %d", name, i)
		}
	}
	return nil
}

// Validate checks both names of the request.
func (r NamespaceRequest) Validate() error {
	if err := ValidateIndexName(r.Index); err != nil {
		return err
	}
	return ValidateNamespaceName(r.Namespace)
}
