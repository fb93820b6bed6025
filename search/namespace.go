// Package search owns the semantic-search partitioning scheme and the
// Elasticsearch mirror. Namespaces have the fixed shape
// hackathons/{uuid}/{submissions|projects|judging} and are validated
// before any external write.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const namespacePrefix = "hackathons"

// Namespace segment types. Exactly these three are known.
const (
	TypeSubmissions = "submissions"
	TypeProjects    = "projects"
	TypeJudging     = "judging"
)

var (
	ErrInvalidNamespace  = errors.New("invalid namespace")
	ErrInvalidDocumentID = errors.New("invalid document id")
)

// Namespace builds the partition key for one hackathon and document type.
// The result is guaranteed to pass ValidateNamespace or an error is
// returned instead.
func Namespace(hackathonID, docType string) (string, error) {
	ns := fmt.Sprintf("%s/%s/%s", namespacePrefix, hackathonID, docType)
	if err := ValidateNamespace(ns); err != nil {
		return "", err
	}
	return ns, nil
}

// ValidateNamespace enforces the fixed three-segment shape with a strict
// UUID hackathon identifier.
func ValidateNamespace(ns string) error {
	segments := strings.Split(ns, "/")
	if len(segments) != 3 {
		return fmt.Errorf("%w: expected 3 segments, got %d", ErrInvalidNamespace, len(segments))
	}
	if segments[0] != namespacePrefix {
		return fmt.Errorf("%w: unknown prefix %q", ErrInvalidNamespace, segments[0])
	}
	if !canonicalUUID(segments[1]) {
		return fmt.Errorf("%w: %q is not a valid hackathon identifier", ErrInvalidNamespace, segments[1])
	}
	switch segments[2] {
	case TypeSubmissions, TypeProjects, TypeJudging:
		return nil
	}
	return fmt.Errorf("%w: unknown segment type %q", ErrInvalidNamespace, segments[2])
}

// DocumentID builds the {submission|project}:{uuid} identifier for one
// indexed document.
func DocumentID(kind, id string) (string, error) {
	if kind != "submission" && kind != "project" {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidDocumentID, kind)
	}
	if !canonicalUUID(id) {
		return "", fmt.Errorf("%w: %q is not a valid identifier", ErrInvalidDocumentID, id)
	}
	return kind + ":" + id, nil
}

// uuid.Parse also accepts braced, urn-prefixed and undashed forms.
// Partition keys and document identifiers use the canonical hyphenated
// form only.
func canonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
