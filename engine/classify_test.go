package engine

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  UpdateKind
	}{
		{"no files", nil, KindUndefined},
		{"regular bundle", []string{"metadata.json", "bundles/ios.js"}, KindNormalUpdate},
		{"rollback pointer", []string{"rollback"}, KindRollback},
		{"embedded marker", []string{"rollback_embedded"}, KindRollbackEmbedded},
		{"embedded wins over rollback", []string{"rollback", "rollback_embedded"}, KindRollbackEmbedded},
		{"marker alongside metadata", []string{"metadata.json", "rollback"}, KindRollback},
		{"marker name in subdirectory is not a marker", []string{"assets/rollback"}, KindNormalUpdate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.files, "rollback_embedded", "rollback")
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestUpdateKindString(t *testing.T) {
	if KindUndefined.String() != "undefined" {
		t.Fatalf("unexpected string for KindUndefined: %s", KindUndefined)
	}
	if KindRollbackEmbedded.String() != "rollback_embedded" {
		t.Fatalf("unexpected string for KindRollbackEmbedded: %s", KindRollbackEmbedded)
	}
}
