package cmd

import "testing"

func TestSlugifyTag(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Go", "go"},
		{"Machine Learning", "machine-learning"},
		{"C++", "c"},
		{"  spaced  out  ", "spaced-out"},
		{"already-a-slug", "already-a-slug"},
		{"Under_score", "under-score"},
	}
	for _, tt := range tests {
		if got := slugifyTag(tt.name); got != tt.want {
			t.Errorf("slugifyTag(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestTagPayload(t *testing.T) {
	defer func() { tagSlug, tagDescription, tagFeatureImage = "", "", "" }()

	tagSlug, tagDescription, tagFeatureImage = "", "", ""
	if got := tagPayload(); len(got) != 0 {
		t.Errorf("tagPayload() with no flags = %v, want empty", got)
	}

	tagSlug = "go"
	tagDescription = "posts about Go"
	got := tagPayload()
	if got["slug"] != "go" || got["description"] != "posts about Go" {
		t.Errorf("tagPayload() = %v", got)
	}
	if _, ok := got["feature_image"]; ok {
		t.Errorf("tagPayload() includes unset feature_image: %v", got)
	}
}
