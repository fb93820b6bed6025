package search

import (
	"errors"
	"testing"
)

const testHackathonID = "5a0e5f1c-2f6a-4f03-9f51-0d0c8f5d1b7e"

func TestNamespace(t *testing.T) {
	ns, err := Namespace(testHackathonID, TypeSubmissions)
	if err != nil {
		t.Fatalf("Namespace() error = %v", err)
	}
	want := "hackathons/" + testHackathonID + "/submissions"
	if ns != want {
		t.Errorf("Namespace() = %q, want %q", ns, want)
	}
}

func TestNamespaceRejectsBadInput(t *testing.T) {
	tests := []struct {
		name        string
		hackathonID string
		docType     string
	}{
		{"not a uuid", "launch-event-2026", TypeSubmissions},
		{"empty id", "", TypeProjects},
		{"unknown type", testHackathonID, "scores"},
		{"slash in id", "a/b", TypeJudging},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Namespace(tt.hackathonID, tt.docType); !errors.Is(err, ErrInvalidNamespace) {
				t.Errorf("Namespace(%q, %q) error = %v, want ErrInvalidNamespace", tt.hackathonID, tt.docType, err)
			}
		})
	}
}

func TestValidateNamespace(t *testing.T) {
	tests := []struct {
		name    string
		ns      string
		wantErr bool
	}{
		{"submissions", "hackathons/" + testHackathonID + "/submissions", false},
		{"projects", "hackathons/" + testHackathonID + "/projects", false},
		{"judging", "hackathons/" + testHackathonID + "/judging", false},
		{"two segments", "hackathons/" + testHackathonID, true},
		{"four segments", "hackathons/" + testHackathonID + "/projects/extra", true},
		{"wrong prefix", "events/" + testHackathonID + "/projects", true},
		{"non-uuid id", "hackathons/abc/projects", true},
		{"urn-prefixed id", "hackathons/urn:uuid:" + testHackathonID + "/projects", true},
		{"braced id", "hackathons/{" + testHackathonID + "}/projects", true},
		{"undashed id", "hackathons/5a0e5f1c2f6a4f039f510d0c8f5d1b7e/projects", true},
		{"unknown type", "hackathons/" + testHackathonID + "/teams", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNamespace(tt.ns)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNamespace(%q) error = %v, wantErr %v", tt.ns, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidNamespace) {
				t.Errorf("error %v does not wrap ErrInvalidNamespace", err)
			}
		})
	}
}

func TestDocumentID(t *testing.T) {
	id, err := DocumentID("submission", testHackathonID)
	if err != nil {
		t.Fatalf("DocumentID() error = %v", err)
	}
	if want := "submission:" + testHackathonID; id != want {
		t.Errorf("DocumentID() = %q, want %q", id, want)
	}

	if _, err := DocumentID("score", testHackathonID); !errors.Is(err, ErrInvalidDocumentID) {
		t.Errorf("unknown kind error = %v, want ErrInvalidDocumentID", err)
	}
	if _, err := DocumentID("project", "not-a-uuid"); !errors.Is(err, ErrInvalidDocumentID) {
		t.Errorf("bad id error = %v, want ErrInvalidDocumentID", err)
	}
	if _, err := DocumentID("project", "5a0e5f1c2f6a4f039f510d0c8f5d1b7e"); !errors.Is(err, ErrInvalidDocumentID) {
		t.Errorf("undashed id error = %v, want ErrInvalidDocumentID", err)
	}
}
