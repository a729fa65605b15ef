package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/commit-canvas/internal/domain/contrib"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPreviewPlain(t *testing.T) {
	out, err := runCLI(t, "preview", "--year", "2024", "--text", "A", "--plain")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Equal(t, "Year | Week Start | Grid Start | Weeks", lines[0])
	require.Equal(t, "2024 | sun | 2023-12-31 | 53", lines[1])

	// Sunday row: the first cell is 2023-12-31, outside the year.
	sunday := strings.Fields(lines[3])
	require.Equal(t, "Sun", sunday[0])
	require.Equal(t, ".", sunday[1])
	require.Equal(t, "0", sunday[2])
	require.Equal(t, "4", sunday[3])
	require.Contains(t, out, "18 contributions")
}

func TestPreviewMondayLabels(t *testing.T) {
	out, err := runCLI(t, "preview", "--year", "2024", "--week-start", "mon", "--plain")
	require.NoError(t, err)
	require.Contains(t, out, "2024 | mon | 2024-01-01 |")
	require.Contains(t, out, "\nMon ")
}

func TestPreviewRejectsBadWeekStart(t *testing.T) {
	_, err := runCLI(t, "preview", "--week-start", "wed")
	require.Error(t, err)
	require.Contains(t, err.Error(), "weekStart must be sun or mon")
}

func TestExportJSON(t *testing.T) {
	out, err := runCLI(t, "export",
		"--year", "2024", "--text", "A",
		"--repo", "art", "--user", "octocat", "--email", "octocat@example.com",
		"--time-mode", "custom", "--time", "09:15",
	)
	require.NoError(t, err)

	var req contrib.RepoRequest
	require.NoError(t, json.Unmarshal([]byte(out), &req))
	require.Equal(t, "art", req.RepoName)
	require.Equal(t, 18, req.Total)
	require.Equal(t, "09:15:00", req.Contributions[0].Time)
	require.Equal(t, 4.0, req.Contributions[0].Count)
}

func TestExportRequiresRepository(t *testing.T) {
	_, err := runCLI(t, "export", "--text", "A")
	require.Error(t, err)
	require.Contains(t, err.Error(), "repoName is required")
}

func TestGenerateWritesArchive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate-repo", r.URL.Path)
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write([]byte("PK"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "out.zip")
	out, err := runCLI(t, "generate",
		"--api-url", srv.URL,
		"--year", "2024", "--text", "HI",
		"--repo", "art", "--user", "octocat", "--email", "octocat@example.com",
		"--out", dest,
	)
	require.NoError(t, err)
	require.Contains(t, out, "saved "+dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, []byte("PK"), data)
}

func TestGenerateSurfacesGeneratorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Repository name already used"}`))
	}))
	defer srv.Close()

	_, err := runCLI(t, "generate",
		"--api-url", srv.URL,
		"--repo", "art", "--user", "octocat", "--email", "octocat@example.com",
		"--out", filepath.Join(t.TempDir(), "x.zip"),
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Repository name already used")
}

func TestFont(t *testing.T) {
	out, err := runCLI(t, "font")
	require.NoError(t, err)
	require.Contains(t, out, "Glyphs are 5x7 cells.")
	require.Contains(t, out, "Symbols:")
}
