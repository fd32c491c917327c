package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/notegraph/pkg/observability"
)

func TestCompletionWritesToCommandOutput(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			t.Cleanup(observability.Reset)
			root := New(os.Stderr, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), "notegraph") {
				t.Errorf("%s script does not mention notegraph", shell)
			}
		})
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg", "png", "pdf", "dot", "json"}},
		{"s", []string{"svg", "png", "pdf", "dot", "json"}},
		{"svg,", []string{"svg,png", "svg,pdf", "svg,dot", "svg,json"}},
		{"svg,dot,p", []string{"svg,dot,png", "svg,dot,pdf", "svg,dot,json"}},
	}
	for _, tt := range tests {
		got, dir := completeFormats(nil, nil, tt.in)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("completeFormats(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
		if dir&cobra.ShellCompDirectiveNoSpace == 0 {
			t.Errorf("completeFormats(%q) should not append a space", tt.in)
		}
	}
}

func TestCompleteNotesFile(t *testing.T) {
	exts, dir := completeNotesFile(nil, nil, "")
	if dir != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("directive = %v, want FilterFileExt", dir)
	}
	if diff := cmp.Diff([]string{"json", "yaml", "yml"}, exts); diff != "" {
		t.Errorf("extensions mismatch (-want +got):\n%s", diff)
	}
	if got, _ := completeNotesFile(nil, []string{"notes.json"}, ""); got != nil {
		t.Errorf("second argument completions = %v, want none", got)
	}
}
