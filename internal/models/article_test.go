package models

import "testing"

func TestArticleSummary(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "marker splits the content",
			content:  "<p>intro</p>\n<p><!-- pagebreak --></p>\n<p>rest</p>",
			expected: "<p>intro</p>\n",
		},
		{
			name:     "no marker returns everything",
			content:  "<p>short post</p>",
			expected: "<p>short post</p>",
		},
		{
			name:     "marker at the start yields empty summary",
			content:  "<p><!-- pagebreak --></p><p>rest</p>",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Article{Content: tt.content}
			if got := a.Summary(); got != tt.expected {
				t.Errorf("Summary() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestProfileSummary(t *testing.T) {
	p := &Profile{}
	if got := p.Summary(); got != "" {
		t.Errorf("Summary() = %q for nil info, want empty", got)
	}

	info := "<p>about</p>\n<p><!-- pagebreak --></p>\n<p>more</p>"
	p.Info = &info
	if got := p.Summary(); got != "<p>about</p>\n" {
		t.Errorf("Summary() = %q, want %q", got, "<p>about</p>\n")
	}
}
