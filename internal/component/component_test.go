package component_test

import (
	"strings"
	"testing"

	"github.com/decagondev/react-component-generator/internal/component"
)

func TestPrompt_ContainsEachFieldOnce(t *testing.T) {
	req := component.Request{
		Name:     "FIELD_NAME_MARKER",
		Purpose:  "FIELD_PURPOSE_MARKER",
		Props:    "FIELD_PROPS_MARKER",
		Behavior: "FIELD_BEHAVIOR_MARKER",
		Styling:  "FIELD_STYLING_MARKER",
		Examples: "FIELD_EXAMPLES_MARKER",
	}

	prompt := req.Prompt()

	for _, marker := range []string{
		req.Name, req.Purpose, req.Props, req.Behavior, req.Styling, req.Examples,
	} {
		if n := strings.Count(prompt, marker); n != 1 {
			t.Errorf("prompt contains %q %d times, want exactly 1", marker, n)
		}
	}
}

func TestPrompt_FieldsInDesignatedPositions(t *testing.T) {
	req := component.Request{
		Name:     "Button",
		Purpose:  "clickable button",
		Props:    "label:string",
		Behavior: "fires onClick",
		Styling:  "rounded",
		Examples: "<Button label=\"Go\" />",
	}

	prompt := req.Prompt()

	wantLines := []string{
		"- **Component Name**: Button",
		"- **Purpose**: clickable button",
		"- **Props**: label:string",
		"- **Behavior**: fires onClick",
		"- **Styling**: rounded",
		"- **Examples**: <Button label=\"Go\" />",
	}
	last := -1
	for _, line := range wantLines {
		idx := strings.Index(prompt, line)
		if idx < 0 {
			t.Fatalf("prompt missing line %q\nprompt:\n%s", line, prompt)
		}
		if idx < last {
			t.Errorf("line %q out of order", line)
		}
		last = idx
	}
}

func TestPrompt_EmptyFields(t *testing.T) {
	req := component.Request{Name: "Button"}

	prompt := req.Prompt()

	// Empty slots are simply empty; the labels remain.
	if !strings.Contains(prompt, "- **Styling**: \n") {
		t.Errorf("empty styling slot not rendered as empty:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- **Component Name**: Button") {
		t.Errorf("name slot missing:\n%s", prompt)
	}
}

func TestPrompt_Deterministic(t *testing.T) {
	req := component.Request{Name: "Card", Purpose: "display content"}
	if req.Prompt() != req.Prompt() {
		t.Error("Prompt is not deterministic for the same request")
	}
}

func TestSystemPrompt_DescribesOutputStyle(t *testing.T) {
	for _, want := range []string{"TypeScript", "TailwindCSS", "JSDoc", ".tsx"} {
		if !strings.Contains(component.SystemPrompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// Name validation
// ---------------------------------------------------------------------------

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Button", false},
		{"with digits", "Card2", false},
		{"with hyphen and underscore", "my-Card_v2", false},
		{"empty", "", true},
		{"leading digit", "2Fast", true},
		{"path separator", "a/b", true},
		{"traversal", "../etc/passwd", true},
		{"dot", "Button.old", true},
		{"space", "My Button", true},
		{"backslash", "a\\b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := component.ValidateName(tt.input)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateName(%q) expected error, got nil", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

func TestFileName(t *testing.T) {
	req := component.Request{Name: "Button"}
	if got := req.FileName(); got != "Button.tsx" {
		t.Errorf("FileName() = %q, want %q", got, "Button.tsx")
	}
}
