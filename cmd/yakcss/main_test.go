package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var tests = []struct {
		name  string
		args  []string
		stdin string
		out   string
	}{
		{
			name:  "styled",
			args:  []string{"-name", "Button"},
			stdin: ".x { color: ${c}; }",
			out:   "\n.Button {\n  .x {\n    color: var(--Button__color);\n  }\n}\n",
		},
		{
			name:  "styled with banner",
			args:  []string{"-name", "Button", "-banner", "-"},
			stdin: "color: red;",
			out:   "/*YAK Extracted CSS:*/\n.Button {\n  color: red;\n}\n",
		},
		{
			name:  "exported mixin",
			args:  []string{"-kind", "mixin", "-name", "shadow", "-banner"},
			stdin: "box-shadow: none; &:hover { color: red; }",
			out:   "/*YAK EXPORTED MIXIN:shadow*/\nbox-shadow: none;\n&:hover {\n  color: red;\n}\n",
		},
		{
			name:  "keyframes",
			args:  []string{"-kind", "keyframes", "-name", "fadeIn", "-check"},
			stdin: "from { opacity: 0; } to { opacity: 1; }",
			out:   "\n@keyframes fadeIn {\n  from {\n    opacity: 0;\n  }\n  to {\n    opacity: 1;\n  }\n}\n",
		},
		{
			name: "empty",
			out:  "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)
			require.NoError(t, err)
			assert.Equal(t, tt.out, stdout.String())
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRun_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "button.css")
	require.NoError(t, os.WriteFile(path, []byte("color: red;"), 0o644))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-name", "b", path}, strings.NewReader(""), &stdout, &stderr))
	assert.Equal(t, "\n.b {\n  color: red;\n}\n", stdout.String())

	err := run([]string{filepath.Join(t.TempDir(), "missing.css")}, strings.NewReader(""), &stdout, &stderr)
	assert.Error(t, err)
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yak.toml")
	require.NoError(t, os.WriteFile(path, []byte("kind = \"keyframes\"\nname = \"spin\"\nbanner = true\n"), 0o644))

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", path}, strings.NewReader("to { rotate: 1turn; }"), &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "/*YAK Extracted CSS:*/\n@keyframes spin {\n  to {\n    rotate: 1turn;\n  }\n}\n", stdout.String())

	// Flags override the file.
	stdout.Reset()
	err = run([]string{"-config", path, "-name", "fade", "-banner=false"}, strings.NewReader("to { opacity: 0; }"), &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "\n@keyframes fade {\n  to {\n    opacity: 0;\n  }\n}\n", stdout.String())

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("kind = "), 0o644))
	err = run([]string{"-config", bad}, strings.NewReader(""), &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse "+bad)
}

func TestRun_DroppedExpression(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-name", "Button"}, strings.NewReader(".x${sel} { color: red; }"), &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "expression cannot be extracted")
	assert.Contains(t, stderr.String(), `"expr":"sel"`)
}

func TestRun_Verbose(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-v"}, strings.NewReader("color: ${c};"), &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "css variable")
	assert.Contains(t, stderr.String(), "--yak__color")
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run([]string{"-kind", "global"}, strings.NewReader(""), &stdout, &stderr)
	assert.EqualError(t, err, `unknown literal kind: "global"`)

	err = run([]string{"-check"}, strings.NewReader(".x { background: url(a(b)); }"), &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad url")

	err = run([]string{"-unknown"}, strings.NewReader(""), &stdout, &stderr)
	assert.Error(t, err)
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-h"}, strings.NewReader(""), &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage: yakcss")
	assert.Empty(t, stdout.String())
}
