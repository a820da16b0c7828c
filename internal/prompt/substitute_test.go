package prompt

import (
	"reflect"
	"testing"
)

func TestSubstitute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		values   map[string]string
		want     string
	}{
		{
			name:     "single token",
			template: "Write in a {{tone}} tone.",
			values:   map[string]string{"tone": "funny"},
			want:     "Write in a funny tone.",
		},
		{
			name:     "repeated token replaced everywhere",
			template: "{{theme}}, always {{theme}}",
			values:   map[string]string{"theme": "love"},
			want:     "love, always love",
		},
		{
			name:     "unknown token left untouched",
			template: "Topic: {{topic}}",
			values:   map[string]string{"tone": "funny"},
			want:     "Topic: {{topic}}",
		},
		{
			name:     "replacement is literal not recursive",
			template: "{{a}}",
			values:   map[string]string{"a": "{{a}}"},
			want:     "{{a}}",
		},
		{
			name:     "case sensitive",
			template: "{{Tone}}",
			values:   map[string]string{"tone": "funny"},
			want:     "{{Tone}}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Substitute(tt.template, tt.values); got != tt.want {
				t.Errorf("Substitute() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindUnresolved(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "clean text", text: "nothing to see", want: nil},
		{name: "single leftover", text: "Topic: {{topic}}", want: []string{"topic"}},
		{name: "sorted and deduplicated", text: "{{b}} {{a}} {{b}}", want: []string{"a", "b"}},
		{name: "nested braces not matched", text: "{{{}}}", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FindUnresolved(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindUnresolved(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "string passes through", in: "hello", want: "hello"},
		{name: "whole float has no decimals", in: float64(10), want: "10"},
		{name: "fractional float keeps them", in: 0.25, want: "0.25"},
		{name: "int", in: 7, want: "7"},
		{name: "bool via fmt", in: true, want: "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Stringify(tt.in); got != tt.want {
				t.Errorf("Stringify(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
