package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownWithStyle(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		width        int
		wantContains []string
	}{
		{
			name:         "plain text",
			input:        "Doctor appointment",
			width:        80,
			wantContains: []string{"Doctor appointment"},
		},
		{
			name:         "heading",
			input:        "# Trip to Lisbon",
			width:        80,
			wantContains: []string{"Trip to Lisbon"},
		},
		{
			name:         "list",
			input:        "- passport\n- tickets\n- charger",
			width:        80,
			wantContains: []string{"passport", "tickets", "charger"},
		},
		{
			name:         "emphasis",
			input:        "Pick up **cake** for *Ana*",
			width:        80,
			wantContains: []string{"cake", "Ana"},
		},
		{
			name:         "narrow width wraps",
			input:        "This is a longer line of text that should wrap",
			width:        20,
			wantContains: []string{"This is a longer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderMarkdownWithStyle(tt.input, tt.width, "dark"))
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output should contain %q, got:\n%s", want, got)
				}
			}
		})
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdownWithStyle("", 80, "dark"); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestRenderMarkdownStyles(t *testing.T) {
	dark := RenderMarkdownWithStyle("# Test", 80, "dark")
	light := RenderMarkdownWithStyle("# Test", 80, "light")
	notty := RenderMarkdownWithStyle("# Test", 80, "notty")

	for name, out := range map[string]string{"dark": dark, "light": light, "notty": notty} {
		if !strings.Contains(stripANSI(out), "Test") {
			t.Errorf("%s render lost the heading: %q", name, out)
		}
	}
	if dark == notty {
		t.Error("expected different output for different styles")
	}
}

func TestRendererCache(t *testing.T) {
	a, err := rendererFor(60, "dark")
	if err != nil {
		t.Fatal(err)
	}
	b, err := rendererFor(60, "dark")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected the cached renderer to be reused")
	}
	c, err := rendererFor(61, "dark")
	if err != nil {
		t.Fatal(err)
	}
	if a == c {
		t.Error("expected a separate renderer for a different width")
	}
}

func TestRenderNoteKeepsLineBreaks(t *testing.T) {
	got := stripANSI(RenderNote("Line one\nLine two", 80, "notty"))
	lines := strings.Split(got, "\n")

	one, two := -1, -1
	for i, l := range lines {
		if strings.Contains(l, "Line one") {
			one = i
		}
		if strings.Contains(l, "Line two") {
			two = i
		}
	}
	if one < 0 || two < 0 {
		t.Fatalf("missing lines in output:\n%s", got)
	}
	if one == two {
		t.Errorf("lines were folded together:\n%s", got)
	}
}
