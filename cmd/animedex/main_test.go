package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/animedex/internal/catalog"
	"github.com/nikbrunner/animedex/internal/listing"
	"github.com/nikbrunner/animedex/internal/model"
	"github.com/nikbrunner/animedex/internal/storage"
)

// makeEntries builds n entries with IDs 1..n. Even IDs carry one image.
func makeEntries(n int) []model.Entry {
	entries := make([]model.Entry, n)
	for i := range entries {
		id := i + 1
		entries[i] = model.Entry{
			ID: id,
			Title: model.Title{
				Romaji:    fmt.Sprintf("Romaji %d", id),
				Native:    fmt.Sprintf("ネイティブ %d", id),
				Preferred: fmt.Sprintf("Title %d", id),
			},
			Images: []string{},
		}
		if id%2 == 0 {
			entries[i].Images = []string{fmt.Sprintf("https://img.example/%d.jpg", id)}
		}
	}
	return entries
}

type testEnv struct {
	dir        string
	configPath string
	catalog    string
	database   string
}

// newTestEnv writes a config pointing at a JSON catalog and a SQLite
// database inside a temp dir.
func newTestEnv(t *testing.T, entries []model.Entry) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.json"),
		catalog:    filepath.Join(dir, "catalog.json"),
		database:   filepath.Join(dir, "catalog.db"),
	}

	cfg := storage.DefaultConfig()
	cfg.Source = env.catalog
	cfg.Database = env.database
	assert.NilError(t, storage.SaveConfig(env.configPath, &cfg))

	if entries != nil {
		assert.NilError(t, storage.NewJSONStorage(env.catalog).Save(context.Background(), entries))
	}
	return env
}

// run executes the root command with args and captures its output.
func (e testEnv) run(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.configPath, "--log-level", "error"}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestList_FirstPage(t *testing.T) {
	env := newTestEnv(t, makeEntries(23))

	out, _, err := env.run("list")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "23 entries · page 1 of 3 · images: all"))
	assert.Check(t, is.Contains(out, "Title 1"))
	assert.Check(t, is.Contains(out, "Title 10"))
	assert.Check(t, !bytes.Contains([]byte(out), []byte("Title 11")))
	assert.Check(t, is.Contains(out, "[1] 2 3"))
}

func TestList_PageIsClamped(t *testing.T) {
	env := newTestEnv(t, makeEntries(23))

	out, _, err := env.run("list", "--page", "99")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "page 3 of 3"))
	assert.Check(t, is.Contains(out, "Title 23"))
}

func TestList_JSON(t *testing.T) {
	env := newTestEnv(t, makeEntries(23))

	out, _, err := env.run("list", "--images", "with", "--page", "2", "--json")
	assert.NilError(t, err)

	var got listOutput
	assert.NilError(t, json.Unmarshal([]byte(out), &got))

	assert.DeepEqual(t, got.Meta, listing.Meta{
		Page:        2,
		PageSize:    10,
		TotalPages:  2,
		TotalItems:  11,
		HasPrevious: true,
		HasNext:     false,
	})
	assert.Equal(t, got.Images, "with")
	assert.DeepEqual(t, got.Window, []int{1, 2})
	assert.Equal(t, len(got.Entries), 1)
	assert.Equal(t, got.Entries[0].ID, 22)
}

func TestList_QueryFlag(t *testing.T) {
	env := newTestEnv(t, makeEntries(23))

	out, _, err := env.run("list", "--query", "ROMAJI 2", "--images", "without")
	assert.NilError(t, err)
	// Romaji 2, 20-23 without images: 21, 23
	assert.Check(t, is.Contains(out, "2 entries · page 1 of 1 · images: without"))
	assert.Check(t, is.Contains(out, "Title 21"))
	assert.Check(t, is.Contains(out, "Title 23"))
}

func TestList_UnknownImageFilter(t *testing.T) {
	env := newTestEnv(t, makeEntries(3))

	_, _, err := env.run("list", "--images", "withot")
	assert.Assert(t, errors.Is(err, listing.ErrUnknownFilterMode))
	assert.ErrorContains(t, err, `did you mean "without"?`)
}

func TestList_MissingCatalog(t *testing.T) {
	env := newTestEnv(t, nil)

	_, _, err := env.run("list")
	var loadErr *catalog.LoadError
	assert.Assert(t, errors.As(err, &loadErr))
	assert.Assert(t, errors.Is(err, os.ErrNotExist))
}

func TestList_SourceFlagOverridesConfig(t *testing.T) {
	env := newTestEnv(t, makeEntries(3))

	other := filepath.Join(env.dir, "other.json")
	assert.NilError(t, storage.NewJSONStorage(other).Save(context.Background(), makeEntries(12)))

	out, _, err := env.run("--source", other, "list")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "12 entries · page 1 of 2"))
}

func TestSearch_Print(t *testing.T) {
	env := newTestEnv(t, makeEntries(23))

	out, _, err := env.run("search", "--print", "title", "1")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "1\tTitle 1\n"))
	assert.Check(t, is.Contains(out, "15\tTitle 15\n"))
	assert.Check(t, !bytes.Contains([]byte(out), []byte("\tTitle 21\n")))
}

func TestSearch_NoMatches(t *testing.T) {
	env := newTestEnv(t, makeEntries(3))

	out, _, err := env.run("search", "zzz")
	assert.NilError(t, err)
	assert.Equal(t, out, "No entries found for 'zzz'\n")
}

func TestSearch_SingleMatchWithoutImages(t *testing.T) {
	env := newTestEnv(t, makeEntries(23))

	out, _, err := env.run("search", "Title 23")
	assert.NilError(t, err)
	assert.Equal(t, out, "Title 23 has no images\n")
}

func TestExport(t *testing.T) {
	env := newTestEnv(t, makeEntries(23))
	path := filepath.Join(env.dir, "out", "export.html")

	out, _, err := env.run("export", path, "--images", "with")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "Exported 10 entries (page 1 of 2) to "+path))

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(string(data), "Title 2"))
	assert.Check(t, is.Contains(string(data), "https://img.example/2.jpg"))
}

func TestImport_MergesIntoDatabase(t *testing.T) {
	env := newTestEnv(t, makeEntries(23))

	out, _, err := env.run("import", env.catalog)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "Imported 23 entries into "+env.database))

	out, _, err = env.run("import", env.catalog)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "Imported 0 entries"))
	assert.Check(t, is.Contains(out, "(23 duplicates skipped)"))

	out, _, err = env.run("--source", env.database, "list", "--page", "3")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "23 entries · page 3 of 3"))
}

func TestImport_FromHTMLExport(t *testing.T) {
	env := newTestEnv(t, makeEntries(23))
	exportPath := filepath.Join(env.dir, "page.html")

	_, _, err := env.run("export", exportPath, "--page", "2")
	assert.NilError(t, err)

	out, _, err := env.run("import", exportPath)
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "Imported 10 entries"))

	db, err := storage.NewSQLiteStorage(env.database)
	assert.NilError(t, err)
	defer db.Close()

	entries, err := db.Load(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, len(entries), 10)
	assert.Equal(t, entries[0].ID, 11)
}

func TestConfig_Overrides(t *testing.T) {
	env := newTestEnv(t, nil)
	t.Setenv("ANIMEDEX_CHECK_CONCURRENCY", "3")

	out, _, err := env.run("--source", "https://example.com/catalog.json", "config")
	assert.NilError(t, err)

	var cfg storage.Config
	assert.NilError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, cfg.Source, "https://example.com/catalog.json")
	assert.Equal(t, cfg.CheckConcurrency, 3)
	assert.Equal(t, cfg.Database, env.database)
	assert.Equal(t, cfg.LogLevel, "error")
}

func TestCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	entries := []model.Entry{
		{ID: 1, Title: model.Title{Preferred: "Good"}, Images: []string{server.URL + "/ok.jpg"}},
		{ID: 2, Title: model.Title{Preferred: "Bad"}, Images: []string{server.URL + "/missing.jpg"}},
		{ID: 3, Title: model.Title{Preferred: "Empty"}, Images: []string{}},
	}
	env := newTestEnv(t, entries)

	out, _, err := env.run("check", "--concurrency", "2")
	assert.NilError(t, err)
	assert.Check(t, is.Contains(out, "missing"))
	assert.Check(t, is.Contains(out, "/missing.jpg  (HTTP 404)"))
	assert.Check(t, !bytes.Contains([]byte(out), []byte("/ok.jpg")))
	assert.Check(t, is.Contains(out, "2 images checked: 1 ok, 1 missing, 0 unreachable"))
}
