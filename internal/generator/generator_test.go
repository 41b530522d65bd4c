package generator_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/decagondev/react-component-generator/internal/component"
	"github.com/decagondev/react-component-generator/internal/generator"
	"github.com/decagondev/react-component-generator/internal/history"
)

// stubClient is an llm.Client that returns a fixed response or error.
type stubClient struct {
	response string
	err      error

	calls      int
	lastSystem string
	lastUser   string
}

func (s *stubClient) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls++
	s.lastSystem = system
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

// stubNotifier records notifications and optionally fails.
type stubNotifier struct {
	messages []string
	err      error
}

func (s *stubNotifier) Name() string { return "stub" }

func (s *stubNotifier) Notify(ctx context.Context, text string) error {
	s.messages = append(s.messages, text)
	return s.err
}

// stubPublisher records publishes and optionally fails.
type stubPublisher struct {
	fileName string
	content  []byte
	err      error
}

func (s *stubPublisher) Publish(ctx context.Context, fileName string, content []byte) (string, error) {
	s.fileName = fileName
	s.content = content
	if s.err != nil {
		return "", s.err
	}
	return "https://github.com/o/r/blob/main/" + fileName, nil
}

func newGenerator(t *testing.T, client *stubClient) (*generator.Generator, string) {
	t.Helper()
	outDir := t.TempDir()
	gen := generator.New(client, "anthropic", "test-model", outDir, zerolog.Nop())
	return gen, outDir
}

func buttonRequest() component.Request {
	return component.Request{
		Name:     "Button",
		Purpose:  "clickable button",
		Props:    "label:string",
		Behavior: "fires onClick",
	}
}

// ---------------------------------------------------------------------------
// Success path
// ---------------------------------------------------------------------------

func TestGenerate_WritesArtifactVerbatim(t *testing.T) {
	const artifact = "export const Button = () => <button>hi</button>;\n"
	client := &stubClient{response: artifact}
	gen, outDir := newGenerator(t, client)

	result, err := gen.Generate(context.Background(), buttonRequest(), false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if result.FileName != "Button.tsx" {
		t.Errorf("FileName = %q, want %q", result.FileName, "Button.tsx")
	}

	data, err := os.ReadFile(filepath.Join(outDir, "Button.tsx"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != artifact {
		t.Errorf("file contents = %q, want %q (byte-for-byte)", data, artifact)
	}
}

func TestGenerate_PassesSystemAndUserPrompts(t *testing.T) {
	client := &stubClient{response: "code"}
	gen, _ := newGenerator(t, client)

	req := buttonRequest()
	if _, err := gen.Generate(context.Background(), req, false); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if client.lastSystem != component.SystemPrompt {
		t.Error("system prompt not passed through unchanged")
	}
	if client.lastUser != req.Prompt() {
		t.Error("user prompt does not match the formatted request")
	}
}

func TestGenerate_OverwritesExistingFile(t *testing.T) {
	client := &stubClient{response: "first version"}
	gen, outDir := newGenerator(t, client)

	if _, err := gen.Generate(context.Background(), buttonRequest(), false); err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	client.response = "second version"
	if _, err := gen.Generate(context.Background(), buttonRequest(), false); err != nil {
		t.Fatalf("second Generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "Button.tsx"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "second version" {
		t.Errorf("file contents = %q, want overwrite with %q", data, "second version")
	}
}

// ---------------------------------------------------------------------------
// Error boundaries
// ---------------------------------------------------------------------------

func TestGenerate_TransportErrorLeavesNoFile(t *testing.T) {
	client := &stubClient{err: fmt.Errorf("connection refused")}
	gen, outDir := newGenerator(t, client)

	_, err := gen.Generate(context.Background(), buttonRequest(), false)
	if !errors.Is(err, generator.ErrGenerate) {
		t.Fatalf("error = %v, want ErrGenerate", err)
	}

	if _, statErr := os.Stat(filepath.Join(outDir, "Button.tsx")); !os.IsNotExist(statErr) {
		t.Error("output file exists after failed generation")
	}
}

func TestGenerate_TransportErrorPreservesExistingFile(t *testing.T) {
	client := &stubClient{response: "original"}
	gen, outDir := newGenerator(t, client)

	if _, err := gen.Generate(context.Background(), buttonRequest(), false); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	client.err = fmt.Errorf("boom")
	if _, err := gen.Generate(context.Background(), buttonRequest(), false); err == nil {
		t.Fatal("expected error, got nil")
	}

	data, err := os.ReadFile(filepath.Join(outDir, "Button.tsx"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("file contents = %q, want unmodified %q", data, "original")
	}
}

func TestGenerate_InvalidNameFailsBeforeAPICall(t *testing.T) {
	client := &stubClient{response: "code"}
	gen, _ := newGenerator(t, client)

	for _, name := range []string{"", "../escape", "a/b", "My Button"} {
		req := buttonRequest()
		req.Name = name

		_, err := gen.Generate(context.Background(), req, false)
		if !errors.Is(err, generator.ErrWrite) {
			t.Errorf("name %q: error = %v, want ErrWrite", name, err)
		}
	}

	if client.calls != 0 {
		t.Errorf("API called %d times for invalid names, want 0", client.calls)
	}
}

// ---------------------------------------------------------------------------
// History recording
// ---------------------------------------------------------------------------

func newTestStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGenerate_RecordsCompleteRun(t *testing.T) {
	client := &stubClient{response: "generated code"}
	gen, _ := newGenerator(t, client)
	store := newTestStore(t)
	gen.WithStore(store)

	result, err := gen.Generate(context.Background(), buttonRequest(), false)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	rec, err := store.Get(result.Record.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Status != history.StatusComplete {
		t.Errorf("Status = %q, want %q", rec.Status, history.StatusComplete)
	}
	if rec.Component.Name != "Button" {
		t.Errorf("Component.Name = %q, want %q", rec.Component.Name, "Button")
	}
	if rec.Bytes != int64(len("generated code")) {
		t.Errorf("Bytes = %d, want %d", rec.Bytes, len("generated code"))
	}
}

func TestGenerate_RecordsFailedRun(t *testing.T) {
	client := &stubClient{err: fmt.Errorf("quota exceeded")}
	gen, _ := newGenerator(t, client)
	store := newTestStore(t)
	gen.WithStore(store)

	if _, err := gen.Generate(context.Background(), buttonRequest(), false); err == nil {
		t.Fatal("expected error, got nil")
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Status != history.StatusError {
		t.Errorf("Status = %q, want %q", records[0].Status, history.StatusError)
	}
	if records[0].Error == "" {
		t.Error("Error field is empty for failed run")
	}
}

// ---------------------------------------------------------------------------
// Notification and publishing
// ---------------------------------------------------------------------------

func TestGenerate_NotifiesOnSuccess(t *testing.T) {
	client := &stubClient{response: "code"}
	gen, _ := newGenerator(t, client)
	notifier := &stubNotifier{}
	gen.WithNotifiers(notifier)

	if _, err := gen.Generate(context.Background(), buttonRequest(), false); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(notifier.messages) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifier.messages))
	}
}

func TestGenerate_NotifierFailureIsNotFatal(t *testing.T) {
	client := &stubClient{response: "code"}
	gen, _ := newGenerator(t, client)
	gen.WithNotifiers(&stubNotifier{err: fmt.Errorf("slack down")})

	if _, err := gen.Generate(context.Background(), buttonRequest(), false); err != nil {
		t.Fatalf("Generate failed on notifier error: %v", err)
	}
}

func TestGenerate_PushPublishes(t *testing.T) {
	client := &stubClient{response: "code"}
	gen, _ := newGenerator(t, client)
	pub := &stubPublisher{}
	gen.WithPublisher(pub)

	result, err := gen.Generate(context.Background(), buttonRequest(), true)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if pub.fileName != "Button.tsx" {
		t.Errorf("published file = %q, want %q", pub.fileName, "Button.tsx")
	}
	if string(pub.content) != "code" {
		t.Errorf("published content = %q, want %q", pub.content, "code")
	}
	if result.PublishURL == "" {
		t.Error("PublishURL is empty after successful publish")
	}
}

func TestGenerate_NoPushSkipsPublisher(t *testing.T) {
	client := &stubClient{response: "code"}
	gen, _ := newGenerator(t, client)
	pub := &stubPublisher{}
	gen.WithPublisher(pub)

	if _, err := gen.Generate(context.Background(), buttonRequest(), false); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if pub.fileName != "" {
		t.Error("publisher called without push")
	}
}
