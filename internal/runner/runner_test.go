package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bblfsh/uastclient/codec"
	"github.com/bblfsh/uastclient/internal/config"
	"github.com/bblfsh/uastclient/internal/exit"
	"github.com/bblfsh/uastclient/internal/formatter/stdout"
	"github.com/bblfsh/uastclient/uast"
	"github.com/bblfsh/uastclient/value"
)

const treeJSON = `{
	"@type": "File",
	"_children": [
		{"@type": "Id", "@token": "a", "@role": ["Identifier"]},
		{"@type": "Call", "args": [{"@type": "Id", "@token": "b"}]}
	]
}`

func newTestRunner(t *testing.T, cfg *config.Config) (*Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := &Runner{
		config:    cfg,
		formatter: stdout.NewWithWriter(&out, codec.JSON, false),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		errOutput: io.Discard,
	}
	return r, &out
}

func writeTree(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessFiles(t *testing.T) {
	tree := writeTree(t, "tree.json", treeJSON)

	tests := []struct {
		name string
		cfg  config.Config
		want []value.Value
	}{
		{
			name: "query_types",
			cfg:  config.Config{Query: "//Id", Types: true},
			want: []value.Value{value.String("Id"), value.String("Id")},
		},
		{
			name: "query_scalar",
			cfg:  config.Config{Query: "count(//Id)"},
			want: []value.Value{value.Int(2)},
		},
		{
			name: "query_attribute",
			cfg:  config.Config{Query: "//Id/@token"},
			want: []value.Value{value.String("a"), value.String("b")},
		},
		{
			name: "jsonpath",
			cfg:  config.Config{Query: `$._children[0]["@token"]`},
			want: []value.Value{value.String("a")},
		},
		{
			name: "pre_order_types",
			cfg:  config.Config{Order: uast.PreOrder, Types: true},
			want: []value.Value{value.String("File"), value.String("Id"), value.String("Call"), value.String("Id")},
		},
		{
			name: "post_order_limit",
			cfg:  config.Config{Order: uast.PostOrder, Types: true, Limit: 2},
			want: []value.Value{value.String("Id"), value.String("Id")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Files = []string{tree}
			r, _ := newTestRunner(t, &cfg)

			s, err := r.ProcessFiles(context.Background(), cfg.Files)
			if err != nil {
				t.Fatalf("ProcessFiles() error = %v", err)
			}
			got := s.FileResults[0]
			if got.Error != nil {
				t.Fatalf("file error = %v", got.Error)
			}
			if diff := cmp.Diff(tt.want, got.Items); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProcessFiles_Failures(t *testing.T) {
	good := writeTree(t, "tree.json", treeJSON)
	malformed := writeTree(t, "bad.json", `{"@type":`)
	unknown := writeTree(t, "tree.txt", treeJSON)

	cfg := &config.Config{Files: []string{good, malformed, unknown}, Query: "//Id"}
	r, _ := newTestRunner(t, cfg)

	s, err := r.ProcessFiles(context.Background(), cfg.Files)
	if err != nil {
		t.Fatalf("ProcessFiles() error = %v", err)
	}
	if s.ProcessedFiles != 3 || s.FailedFiles != 2 {
		t.Fatalf("summary = %+v", s)
	}
	if !errors.Is(s.FileResults[1].Error, codec.ErrMalformed) {
		t.Errorf("malformed file error = %v", s.FileResults[1].Error)
	}
	if !errors.Is(s.FileResults[2].Error, config.ErrUnknownFormat) {
		t.Errorf("unknown extension error = %v", s.FileResults[2].Error)
	}
}

func TestProcessFiles_BadQuery(t *testing.T) {
	tree := writeTree(t, "tree.json", treeJSON)
	cfg := &config.Config{Files: []string{tree}, Query: "//["}
	r, _ := newTestRunner(t, cfg)

	s, err := r.ProcessFiles(context.Background(), cfg.Files)
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(s.FileResults[0].Error, uast.ErrQuery) {
		t.Errorf("error = %v, want ErrQuery", s.FileResults[0].Error)
	}
}

func TestProcessFiles_Cancelled(t *testing.T) {
	tree := writeTree(t, "tree.json", treeJSON)
	cfg := &config.Config{Files: []string{tree, tree}}
	r, _ := newTestRunner(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := r.ProcessFiles(ctx, cfg.Files)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if s.ProcessedFiles != 0 {
		t.Errorf("processed %d files after cancellation", s.ProcessedFiles)
	}
}

func TestRun(t *testing.T) {
	tree := writeTree(t, "tree.json", treeJSON)

	t.Run("success", func(t *testing.T) {
		r, out := newTestRunner(t, &config.Config{Files: []string{tree}, Query: "//Id/@token"})
		if code := r.Run(context.Background()); code != exit.CodeOK {
			t.Fatalf("Run() = %d, want %d", code, exit.CodeOK)
		}
		want := "2 Results:\n== 1 ==================================\n\"a\"\n== 2 ==================================\n\"b\"\n"
		if diff := cmp.Diff(want, out.String()); diff != "" {
			t.Errorf("output mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("failure", func(t *testing.T) {
		r, out := newTestRunner(t, &config.Config{Files: []string{tree}, Query: "//["})
		if code := r.Run(context.Background()); code != exit.CodeError {
			t.Fatalf("Run() = %d, want %d", code, exit.CodeError)
		}
		if !strings.Contains(out.String(), "Failed:") {
			t.Errorf("output = %q", out.String())
		}
	})
}

func TestNew(t *testing.T) {
	defer uast.SetLogger(nil)

	if _, res := New(nil); res == nil || res.ExitCode != exit.CodeError {
		t.Errorf("New(nil) = %+v", res)
	}
	r, res := New(&config.Config{Output: codec.YAML, Debug: true})
	if res != nil {
		t.Fatalf("New() exit = %+v", res)
	}
	if !r.logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug config should enable debug logging")
	}
}
