package material

import (
	"strings"
	"testing"
	"time"

	"github.com/mevaro/searchd/internal/domain/material/category"
	"github.com/mevaro/searchd/internal/domain/material/status"
)

var created = time.Unix(1700000000, 0).UTC()

func TestNew_Valid(t *testing.T) {
	m, err := New(
		"m1", "Intro to Circuits", "Basic RC networks",
		[]string{"circuits", "rc"},
		category.Engineering, "https://files.example/c.pdf", "pdf", 1024,
		"u1", created,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID() != "m1" {
		t.Errorf("ID() = %q", m.ID())
	}
	if m.Status() != status.Pending {
		t.Errorf("new material must be pending, got %v", m.Status())
	}
	if !m.UpdatedAt().Equal(m.CreatedAt()) {
		t.Error("updatedAt must start equal to createdAt")
	}
	if m.ApprovedAt() != nil {
		t.Error("new material must not be approved")
	}
	if m.HasEmbedding() {
		t.Error("new material must not carry a vector")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		id, title   string
		description string
		keywords    []string
		cat         category.Category
	}{
		{name: "empty id", title: "t", cat: category.Science},
		{name: "blank title", id: "m1", title: "   ", cat: category.Science},
		{name: "title too long", id: "m1", title: strings.Repeat("a", MaxTitleLength+1), cat: category.Science},
		{name: "description too long", id: "m1", title: "t", description: strings.Repeat("a", MaxDescriptionLength+1), cat: category.Science},
		{name: "too many keywords", id: "m1", title: "t", keywords: []string{"a", "b", "c", "d", "e", "f"}, cat: category.Science},
		{name: "invalid category", id: "m1", title: "t", cat: category.Category("history")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.title, tt.description, tt.keywords, tt.cat, "", "", 0, "u1", created)
			if err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNew_ClonesKeywords(t *testing.T) {
	keywords := []string{"a", "b"}
	m, _ := New("m1", "t", "", keywords, category.Arts, "", "", 0, "u1", created)

	keywords[0] = "mutated"
	if m.Keywords()[0] != "a" {
		t.Error("keyword mutation leaked into material")
	}
}

func TestEmbeddingText(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		keywords    []string
		want        string
	}{
		{
			name:        "all parts",
			title:       "Calculus I",
			description: "Limits and derivatives",
			keywords:    []string{"math", "calculus"},
			want:        "Calculus I\nLimits and derivatives\nmath, calculus",
		},
		{
			name:  "title only",
			title: "Calculus I",
			want:  "Calculus I",
		},
		{
			name:     "no description keeps single separator",
			title:    "Calculus I",
			keywords: []string{"math"},
			want:     "Calculus I\nmath",
		},
		{
			name:        "no title",
			description: "desc",
			keywords:    []string{"k"},
			want:        "desc\nk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EmbeddingText(tt.title, tt.description, tt.keywords); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmbeddingText_Deterministic(t *testing.T) {
	m := Reconstruct(
		"m1", "Title", "Desc", []string{"k1", "k2"},
		category.Science, status.Approved,
		"", "", 0, "u1", 0, 0, created, created, nil, nil,
	)
	if m.EmbeddingText() != m.EmbeddingText() {
		t.Error("embedding text must be stable across calls")
	}
	if m.EmbeddingText() != "Title\nDesc\nk1, k2" {
		t.Errorf("unexpected embedding text %q", m.EmbeddingText())
	}
}
