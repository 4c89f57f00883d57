package nlp

import (
	"reflect"
	"testing"
)

func TestWordTokenizer(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		lowercase bool
		want      []string
	}{
		{
			name: "punctuation splits",
			text: "Merapi, an active volcano.",
			want: []string{"Merapi", "an", "active", "volcano"},
		},
		{
			name: "digits are tokens",
			text: "erupted in 2010",
			want: []string{"erupted", "in", "2010"},
		},
		{
			name: "non latin scripts",
			text: "ここは 東京 (Tokyo) です",
			want: []string{"ここは", "東京", "Tokyo", "です"},
		},
		{
			name:      "lowercase folding",
			text:      "The Volcano ERUPTED",
			lowercase: true,
			want:      []string{"the", "volcano", "erupted"},
		},
		{
			name: "case kept by default",
			text: "Der Vulkan",
			want: []string{"Der", "Vulkan"},
		},
		{
			name: "only separators",
			text: " ... !! ",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WordTokenizer{Lowercase: tt.lowercase}.Tokenize(tt.text, "en")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokenizerFunc(t *testing.T) {
	var gotLang string
	tok := TokenizerFunc(func(text, language string) []string {
		gotLang = language
		return []string{text}
	})
	out := tok.Tokenize("whole", "fi")
	if gotLang != "fi" || len(out) != 1 || out[0] != "whole" {
		t.Errorf("adapter mangled the call: %v lang=%q", out, gotLang)
	}
}
