package result

import (
	"testing"
	"time"

	"github.com/mevaro/searchd/internal/domain/material"
	"github.com/mevaro/searchd/internal/domain/material/category"
	"github.com/mevaro/searchd/internal/domain/material/status"
)

func sampleMaterial() material.Material {
	created := time.Unix(1700000000, 0).UTC()
	return material.Reconstruct(
		"m1", "Title", "Desc", nil,
		category.Science, status.Approved,
		"", "", 0, "u1", 0, 0, created, created, nil, nil,
	)
}

func TestNewHit(t *testing.T) {
	h := NewHit(sampleMaterial(), 0.87)

	if h.Material().ID() != "m1" {
		t.Errorf("Material().ID() = %q", h.Material().ID())
	}
	if h.Score() != 0.87 {
		t.Errorf("Score() = %f", h.Score())
	}
}

func TestNew(t *testing.T) {
	hits := []Hit{NewHit(sampleMaterial(), 0.9)}
	r := New(hits, 42, Lexical)

	if len(r.Hits()) != 1 {
		t.Errorf("Hits() len = %d", len(r.Hits()))
	}
	if r.Total() != 42 {
		t.Errorf("Total() = %d", r.Total())
	}
	if r.Source() != Lexical {
		t.Errorf("Source() = %q", r.Source())
	}
}

func TestSourceConstants(t *testing.T) {
	if Semantic != "semantic" {
		t.Errorf("Semantic = %q", Semantic)
	}
	if Lexical != "lexical" {
		t.Errorf("Lexical = %q", Lexical)
	}
}
