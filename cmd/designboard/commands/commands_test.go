package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag back to its default, since rootCmd and its
// subcommands are shared by all tests.
func resetFlags(t *testing.T) {
	t.Helper()
	configPath, envFile, verbose = "", "", false
	for flag, def := range map[string]string{
		"script": "", "output": "", "format": "", "width": "0", "height": "0",
	} {
		require.NoError(t, renderCmd.Flags().Set(flag, def))
	}
	require.NoError(t, serveCmd.Flags().Set("addr", ""))
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(t)
	t.Cleanup(func() { resetFlags(t) })
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

const script = `
clock: 1700000000000
events:
  - {type: drop, kind: loadBalancer, at: {x: 400, y: 100}}
  - type: connect
    source: "1"
    sourceAnchor: right-source
    target: "1700000000000"
    targetAnchor: left-target
`

func TestRender(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "board.yaml")
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0644))

	out := run(t, "render", "-s", scriptPath, "--format", "mermaid")
	assert.Contains(t, out, `n_1700000000000{{"Load Balancer<br/>(Load Balancer)"}}`)
	assert.Contains(t, out, "n_1 --- n_1700000000000")

	svgPath := filepath.Join(dir, "board.svg")
	run(t, "render", "-s", scriptPath, "-o", svgPath, "--format", "")
	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), "Load Balancer")

	// Flags from the previous run do not leak into the next one.
	out = run(t, "render", "-s", scriptPath, "--format", "dot")
	assert.Contains(t, out, "digraph board")
}

func TestRender_Errors(t *testing.T) {
	resetFlags(t)
	t.Cleanup(func() { resetFlags(t) })
	rootCmd.SetArgs([]string{"render", "-s", filepath.Join(t.TempDir(), "missing.yaml"), "--format", "svg"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"render", "-s", "", "--format", "pdf"})
	assert.Error(t, rootCmd.Execute())
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "svg", formatFromPath(""))
	assert.Equal(t, "svg", formatFromPath("a.svg"))
	assert.Equal(t, "mermaid", formatFromPath("a.MMD"))
	assert.Equal(t, "dot", formatFromPath("a.gv"))
	assert.Equal(t, "excalidraw", formatFromPath("a.excalidraw"))
}

func TestLists(t *testing.T) {
	out := run(t, "shortcuts")
	assert.Contains(t, out, "Keyboard Shortcuts")
	assert.Contains(t, out, "Shift + Scroll")
	assert.Contains(t, out, "Save diagram (coming soon)")

	out = run(t, "palette")
	assert.Contains(t, out, "Object Storage")
	assert.Contains(t, out, "objectStorage")

	assert.Contains(t, run(t, "version"), "designboard dev")
}

func TestRender_Examples(t *testing.T) {
	out := run(t, "render", "-c", "../../../examples/designboard.toml",
		"-s", "../../../examples/url-shortener.yaml", "--format", "mermaid")
	assert.Contains(t, out, "Shortener API")
	assert.Contains(t, out, "n_1 --- n_1700000000000")
	assert.Contains(t, out, "n_1700000000001 --> n_1700000000003")
	assert.Contains(t, out, "stroke:#ef4444,stroke-width:3px")
}
