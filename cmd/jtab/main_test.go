package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arnodel/jsontable"
)

const threeRecords = `[{"a":1,"b":"x"},{"a":2,"b":"y"},{"a":3}]`

func runJtab(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("JTAB_DRIVER", "")
	t.Setenv("JTAB_DSN", "")
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHeaders(t *testing.T) {
	path := writeFile(t, "data.json", threeRecords)
	out, _, err := runJtab(t, "", "headers", path)
	require.NoError(t, err)
	require.Equal(t, "0\ta\n1\tb\n", out)

	out, _, err = runJtab(t, "", "headers", "-")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{
			name:  "json",
			input: threeRecords,
			args:  []string{"cat", "-"},
			want:  `{"a":1,"b":"x"}` + "\n" + `{"a":2,"b":"y"}` + "\n" + `{"a":3}` + "\n",
		},
		{
			name:  "pretty",
			input: `[{"a":1,"b":"x"}]`,
			args:  []string{"cat", "--out", "pretty", "-"},
			want:  "{\n  \"a\": 1,\n  \"b\": \"x\"\n}\n",
		},
		{
			name:  "table",
			input: `[{"a":1,"b":"x"},{"a":22,"b":null}]`,
			args:  []string{"cat", "--out", "table", "-"},
			want:  "a   b\n1   x\n22  NULL\n",
		},
		{
			name:  "csv",
			input: threeRecords,
			args:  []string{"cat", "--out", "csv", "-"},
			want:  "a,b\n1,x\n2,y\n3,\n",
		},
		{
			name:  "dates",
			input: `[{"d":"2024-01-15"}]`,
			args:  []string{"cat", "-"},
			want:  `{"d":"2024-01-15T00:00:00Z"}` + "\n",
		},
		{
			name:  "no dates",
			input: `[{"d":"2024-01-15"}]`,
			args:  []string{"cat", "--no-dates", "-"},
			want:  `{"d":"2024-01-15"}` + "\n",
		},
		{
			name:  "durations",
			input: `[{"d":"90m"}]`,
			args:  []string{"--parse-durations", "cat", "-"},
			want:  `{"d":"1h30m0s"}` + "\n",
		},
		{
			name:  "empty",
			input: "",
			args:  []string{"cat", "-"},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runJtab(t, tt.input, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestCatColors(t *testing.T) {
	out, _, err := runJtab(t, `[{"a":"x"}]`, "cat", "--color", "always", "-")
	require.NoError(t, err)
	require.Equal(t, "{\033[34;1m\"a\"\033[0m:\033[32m\"x\"\033[0m}\n", out)

	// Buffers are not terminals
	out, _, err = runJtab(t, `[{"a":"x"}]`, "cat", "-")
	require.NoError(t, err)
	require.NotContains(t, out, "\033[")
}

func TestCatErrors(t *testing.T) {
	_, _, err := runJtab(t, threeRecords, "cat", "--out", "xml", "-")
	require.ErrorContains(t, err, "invalid output format")

	_, _, err = runJtab(t, `{"a":1}`, "cat", "-")
	require.ErrorIs(t, err, jsontable.ErrParse)

	_, _, err = runJtab(t, threeRecords, "cat", "--color", "sometimes", "-")
	require.ErrorContains(t, err, "invalid color")

	_, _, err = runJtab(t, "", "cat", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestProgressLogging(t *testing.T) {
	_, logs, err := runJtab(t, threeRecords, "--notify", "2", "cat", "-")
	require.NoError(t, err)
	require.Contains(t, logs, "msg=read rows=2")
	require.NotContains(t, logs, "rows=1")
	require.NotContains(t, logs, "rows=3")
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "jtab.yaml", "color: always\nparse:\n  dates: false\n")
	out, _, err := runJtab(t, `[{"d":"2024-01-15"}]`, "--config", cfg, "cat", "--color", "never", "-")
	require.NoError(t, err)
	require.Equal(t, `{"d":"2024-01-15"}`+"\n", out)

	bad := writeFile(t, "bad.yaml", "database:\n  driver: oracle\n")
	_, _, err = runJtab(t, "[]", "--config", bad, "cat", "-")
	require.ErrorContains(t, err, "unsupported database driver")
}

func TestImportExport(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db")
	input := writeFile(t, "data.json", threeRecords)

	_, logs, err := runJtab(t, "", "import", input, "--driver", "sqlite", "--dsn", dsn, "--table", "t", "--create")
	require.NoError(t, err)
	require.Contains(t, logs, "msg=imported table=t rows=3")

	out, _, err := runJtab(t, "", "export", "--driver", "sqlite", "--dsn", dsn, "--query", "SELECT a, b FROM t ORDER BY a")
	require.NoError(t, err)
	require.Equal(t, "[{\"a\":1,\"b\":\"x\"},\n{\"a\":2,\"b\":\"y\"},\n{\"a\":3,\"b\":null}]", out)

	// Export to a file, the database being set in the configuration
	cfg := writeFile(t, "jtab.yaml", "database:\n  driver: sqlite\n  dsn: "+dsn+"\n")
	outPath := filepath.Join(t.TempDir(), "out.json")
	out, _, err = runJtab(t, "", "--config", cfg, "export", "--query", "SELECT b FROM t WHERE a = 2", outPath)
	require.NoError(t, err)
	require.Empty(t, out)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, `{"b":"y"}`, string(data))

	// Importing again into the existing table
	_, logs, err = runJtab(t, `[{"a":4,"b":"z"}]`, "--config", cfg, "import", "-", "--table", "t")
	require.NoError(t, err)
	require.Contains(t, logs, "rows=1")
}

func TestImportExportErrors(t *testing.T) {
	input := writeFile(t, "data.json", threeRecords)

	_, _, err := runJtab(t, "", "import", input, "--driver", "sqlite", "--dsn", ":memory:")
	require.ErrorContains(t, err, "missing --table")

	_, _, err = runJtab(t, "", "import", input, "--table", "t")
	require.ErrorContains(t, err, "no database driver")

	_, _, err = runJtab(t, "", "export", "--driver", "sqlite", "--dsn", ":memory:")
	require.ErrorContains(t, err, "missing --query")

	_, _, err = runJtab(t, "", "export", "--driver", "oracle", "--query", "SELECT 1")
	require.ErrorContains(t, err, "unsupported database driver")
}
