package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/forgehq/hackforge/metrics"
	"github.com/forgehq/hackforge/models"
)

const (
	IdxSubmissions = "submissions_v1"
	IdxProjects    = "projects_v1"
)

// Indexer mirrors submissions and projects into Elasticsearch,
// partitioned by namespace. The index is a read model: failures are
// logged and counted, never propagated to the write path.
type Indexer struct {
	client *es.Client
	logger *slog.Logger
}

func NewIndexer(elasticURL string, logger *slog.Logger) (*Indexer, error) {
	client, err := es.NewClient(es.Config{Addresses: []string{elasticURL}})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &Indexer{client: client, logger: logger}, nil
}

func (ix *Indexer) EnsureIndexes(ctx context.Context) error {
	mapping := `{"settings":{"number_of_shards":1},"mappings":{"dynamic":"strict","properties":{
		"namespace":{"type":"keyword"},"hackathon_id":{"type":"keyword"},"project_id":{"type":"keyword"},
		"narrative":{"type":"text"},"artifact_labels":{"type":"text"},"created_at":{"type":"date"}
	}}}`
	if err := ix.ensure(ctx, IdxSubmissions, mapping); err != nil {
		return err
	}

	mapping = `{"settings":{"number_of_shards":1},"mappings":{"dynamic":"strict","properties":{
		"namespace":{"type":"keyword"},"hackathon_id":{"type":"keyword"},"team_id":{"type":"keyword"},
		"name":{"type":"text"},"description":{"type":"text"},"status":{"type":"keyword"},"created_at":{"type":"date"}
	}}}`
	return ix.ensure(ctx, IdxProjects, mapping)
}

func (ix *Indexer) ensure(ctx context.Context, index, body string) error {
	exists, err := ix.client.Indices.Exists([]string{index}, ix.client.Indices.Exists.WithContext(ctx))
	if err == nil && exists.StatusCode == 200 {
		exists.Body.Close()
		return nil
	}
	if exists != nil {
		exists.Body.Close()
	}
	res, err := ix.client.Indices.Create(index,
		ix.client.Indices.Create.WithBody(bytes.NewBufferString(body)),
		ix.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("failed to create index %s: %s", index, res.String())
	}
	return nil
}

type submissionDoc struct {
	Namespace      string    `json:"namespace"`
	HackathonID    string    `json:"hackathon_id"`
	ProjectID      string    `json:"project_id"`
	Narrative      string    `json:"narrative"`
	ArtifactLabels []string  `json:"artifact_labels,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type projectDoc struct {
	Namespace   string    `json:"namespace"`
	HackathonID string    `json:"hackathon_id"`
	TeamID      string    `json:"team_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// IndexSubmission mirrors one submission. Best effort only.
func (ix *Indexer) IndexSubmission(ctx context.Context, s *models.Submission) {
	docID, err := DocumentID("submission", s.ID)
	if err != nil {
		ix.fail("submission", s.ID, err)
		return
	}
	labels := make([]string, 0, len(s.Artifacts))
	for _, a := range s.Artifacts {
		if a.Label != "" {
			labels = append(labels, a.Label)
		}
	}
	doc := submissionDoc{
		Namespace:      s.Namespace,
		HackathonID:    s.HackathonID,
		ProjectID:      s.ProjectID,
		Narrative:      s.Narrative,
		ArtifactLabels: labels,
		CreatedAt:      s.CreatedAt,
	}
	ix.index(ctx, IdxSubmissions, docID, doc)
}

// IndexProject mirrors one project under the hackathon's projects
// namespace.
func (ix *Indexer) IndexProject(ctx context.Context, p *models.Project) {
	ns, err := Namespace(p.HackathonID, TypeProjects)
	if err != nil {
		ix.fail("project", p.ID, err)
		return
	}
	docID, err := DocumentID("project", p.ID)
	if err != nil {
		ix.fail("project", p.ID, err)
		return
	}
	doc := projectDoc{
		Namespace:   ns,
		HackathonID: p.HackathonID,
		TeamID:      p.TeamID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
	ix.index(ctx, IdxProjects, docID, doc)
}

func (ix *Indexer) index(ctx context.Context, index, docID string, doc interface{}) {
	payload, err := json.Marshal(doc)
	if err != nil {
		ix.fail(index, docID, err)
		return
	}
	res, err := ix.client.Index(index,
		bytes.NewReader(payload),
		ix.client.Index.WithDocumentID(docID),
		ix.client.Index.WithContext(ctx),
	)
	if err != nil {
		ix.fail(index, docID, err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		ix.fail(index, docID, fmt.Errorf("index response: %s", res.String()))
		return
	}
	metrics.IndexedDocuments.WithLabelValues("ok").Inc()
}

func (ix *Indexer) fail(kind, id string, err error) {
	metrics.IndexedDocuments.WithLabelValues("error").Inc()
	ix.logger.Error("semantic index write failed",
		slog.String("kind", kind),
		slog.String("id", id),
		slog.Any("error", err),
	)
}

// Hit is one semantic-search result.
type Hit struct {
	ID    string  `json:"id"`
	Index string  `json:"index"`
	Score float64 `json:"score"`
}

// Search queries one hackathon's partition of a document type.
func (ix *Indexer) Search(ctx context.Context, hackathonID, docType, query string, limit int) ([]Hit, error) {
	ns, err := Namespace(hackathonID, docType)
	if err != nil {
		return nil, err
	}
	index := IdxSubmissions
	if docType == TypeProjects {
		index = IdxProjects
	}
	if limit <= 0 {
		limit = 10
	}

	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"namespace": ns}},
				},
				"must": []map[string]interface{}{
					{"multi_match": map[string]interface{}{
						"query":  query,
						"fields": []string{"narrative", "name", "description", "artifact_labels"},
					}},
				},
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	res, err := ix.client.Search(
		ix.client.Search.WithContext(ctx),
		ix.client.Search.WithIndex(index),
		ix.client.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search failed: %s", res.String())
	}

	var decoded struct {
		Hits struct {
			Hits []struct {
				ID    string  `json:"_id"`
				Index string  `json:"_index"`
				Score float64 `json:"_score"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	hits := make([]Hit, 0, len(decoded.Hits.Hits))
	for _, h := range decoded.Hits.Hits {
		hits = append(hits, Hit{ID: h.ID, Index: h.Index, Score: h.Score})
	}
	return hits, nil
}
