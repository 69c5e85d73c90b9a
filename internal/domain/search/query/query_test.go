package query

import (
	"strings"
	"testing"

	"github.com/mevaro/searchd/internal/domain/material/category"
	"github.com/mevaro/searchd/internal/domain/search/order"
)

func TestNew_Defaults(t *testing.T) {
	q, err := New("algebra", nil, "", 0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Sort() != order.Recent {
		t.Errorf("Sort() = %q, want recent", q.Sort())
	}
	if q.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d, want %d", q.Limit(), DefaultLimit)
	}
	if q.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", q.Offset())
	}
}

func TestNew_ClampsLimit(t *testing.T) {
	q, err := New("x", nil, order.Recent, MaxLimit+50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Limit() != MaxLimit {
		t.Errorf("Limit() = %d, want %d", q.Limit(), MaxLimit)
	}
}

func TestNew_RejectsLongText(t *testing.T) {
	if _, err := New(strings.Repeat("a", MaxTextLength+1), nil, order.Recent, 10, 0); err == nil {
		t.Error("expected error for oversized text")
	}
}

func TestNew_RejectsInvalidCategory(t *testing.T) {
	cats := []category.Category{category.Category("history")}
	if _, err := New("x", cats, order.Recent, 10, 0); err == nil {
		t.Error("expected error for invalid category")
	}
}

func TestIsTextBlank(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"a", false},
		{" a ", false},
	}

	for _, tt := range tests {
		q, err := New(tt.text, nil, order.Recent, 10, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := q.IsTextBlank(); got != tt.want {
			t.Errorf("IsTextBlank(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
