package backfill

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mevaro/searchd/internal/domain"
	"github.com/mevaro/searchd/internal/domain/material"
	"github.com/mevaro/searchd/internal/domain/material/category"
	"github.com/mevaro/searchd/internal/domain/material/status"
)

type mockRepo struct {
	missing   []material.Material
	listErr   error
	setErr    map[string]error
	setCalls  []string
	setVector []float32
}

func (m *mockRepo) ListMissingEmbeddings(_ context.Context) ([]material.Material, error) {
	return append([]material.Material(nil), m.missing...), m.listErr
}

func (m *mockRepo) SetEmbedding(_ context.Context, id string, vector []float32) error {
	m.setCalls = append(m.setCalls, id)
	m.setVector = vector
	if err := m.setErr[id]; err != nil {
		return err
	}
	// A stored vector leaves the missing set, like the real index.
	for i, mat := range m.missing {
		if mat.ID() == id {
			m.missing = append(m.missing[:i], m.missing[i+1:]...)
			break
		}
	}
	return nil
}

type mockEmbedder struct {
	vec      []float32
	errFor   map[string]error
	requests []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.requests = append(m.requests, text)
	if err := m.errFor[text]; err != nil {
		return domain.EmbeddingResult{}, err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func approvedMaterial(id, title string) material.Material {
	now := time.Now()
	return material.Reconstruct(
		id, title, "desc", []string{"kw"},
		category.Science, status.Approved,
		"https://files.example/"+id, "pdf", 2048, "user-1",
		0, 0, now, now, &now, nil,
	)
}

func TestRun_EmbedsAllMissing(t *testing.T) {
	repo := &mockRepo{missing: []material.Material{
		approvedMaterial("m1", "Cell Biology"),
		approvedMaterial("m2", "Thermodynamics"),
	}}
	embed := &mockEmbedder{vec: []float32{0.1, 0.2}}
	svc := New(repo, embed, zap.NewNop())

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Scanned != 2 || report.Embedded != 2 || report.Failed != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
	if len(repo.setCalls) != 2 {
		t.Fatalf("expected 2 SetEmbedding calls, got %d", len(repo.setCalls))
	}
	if repo.setCalls[0] != "m1" || repo.setCalls[1] != "m2" {
		t.Errorf("expected sequential order m1,m2, got %v", repo.setCalls)
	}
}

func TestRun_ContinuesPastFailedItem(t *testing.T) {
	repo := &mockRepo{missing: []material.Material{
		approvedMaterial("m1", "Cell Biology"),
		approvedMaterial("m2", "Thermodynamics"),
		approvedMaterial("m3", "Genetics"),
	}}
	embed := &mockEmbedder{
		vec:    []float32{0.1},
		errFor: map[string]error{"Thermodynamics\ndesc\nkw": domain.ErrEmbeddingUnavailable},
	}
	svc := New(repo, embed, zap.NewNop())

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Scanned != 3 || report.Embedded != 2 || report.Failed != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
	if len(repo.setCalls) != 2 {
		t.Errorf("expected 2 stored embeddings, got %d", len(repo.setCalls))
	}
}

func TestRun_SecondRunEmbedsNothing(t *testing.T) {
	repo := &mockRepo{missing: []material.Material{
		approvedMaterial("m1", "Cell Biology"),
		approvedMaterial("m2", "Thermodynamics"),
	}}
	embed := &mockEmbedder{vec: []float32{0.1, 0.2}}
	svc := New(repo, embed, zap.NewNop())

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error on first run: %v", err)
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	if report.Scanned != 0 || report.Embedded != 0 || report.Failed != 0 {
		t.Errorf("second run must be a no-op, got %+v", report)
	}
	if len(embed.requests) != 2 {
		t.Errorf("embedder must not run again, got %d requests", len(embed.requests))
	}
	if len(repo.setCalls) != 2 {
		t.Errorf("no new vectors expected, got %d stores", len(repo.setCalls))
	}
}

func TestRun_ListErrorAborts(t *testing.T) {
	repo := &mockRepo{listErr: domain.ErrSearchBackend}
	svc := New(repo, &mockEmbedder{}, zap.NewNop())

	_, err := svc.Run(context.Background())
	if !errors.Is(err, domain.ErrSearchBackend) {
		t.Fatalf("expected ErrSearchBackend, got %v", err)
	}
}

func TestRun_CancellationStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &mockRepo{missing: []material.Material{approvedMaterial("m1", "Cell Biology")}}
	svc := New(repo, &mockEmbedder{vec: []float32{0.1}}, zap.NewNop())

	report, err := svc.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if report.Embedded != 0 {
		t.Errorf("no items should be embedded after cancellation, got %d", report.Embedded)
	}
}

func TestRun_StoreFailureCountsAsFailed(t *testing.T) {
	repo := &mockRepo{
		missing: []material.Material{approvedMaterial("m1", "Cell Biology")},
		setErr:  map[string]error{"m1": domain.ErrSearchBackend},
	}
	svc := New(repo, &mockEmbedder{vec: []float32{0.1}}, zap.NewNop())

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Failed != 1 || report.Embedded != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
}
