package order

import "testing"

func TestIsValid(t *testing.T) {
	valid := []Mode{Recent, Popular, Views, Relevance}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", m)
		}
	}

	invalid := []Mode{"", "newest", "RECENT"}
	for _, m := range invalid {
		if m.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", m)
		}
	}
}

func TestParse_FallsBackToRecent(t *testing.T) {
	if Parse("popular") != Popular {
		t.Error("expected Popular")
	}
	if Parse("") != Recent {
		t.Error("empty key must fall back to Recent")
	}
	if Parse("unknown") != Recent {
		t.Error("unknown key must fall back to Recent")
	}
}
