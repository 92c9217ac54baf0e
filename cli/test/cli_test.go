package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/binhbb2204/Top-Movies/cli"
)

type cliEnv struct {
	dbPath string
	home   string
}

func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	home := filepath.Join(dir, "home")

	t.Setenv("TOPMOVIES_HOME", home)
	t.Setenv("DB_PATH", "")
	t.Setenv("TMDB_API_TOKEN", "")
	t.Setenv("TMDB_BASE_URL", "")
	t.Setenv("LOG_LEVEL", "")

	return &cliEnv{dbPath: filepath.Join(dir, "movies.db"), home: home}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := cli.Run(append(args, "--db", e.dbPath), strings.NewReader(""), &out)
	return out.String(), err
}

func TestListEmpty(t *testing.T) {
	env := setupCLI(t)

	out, err := env.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Your list is empty") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestSeedListRateDelete(t *testing.T) {
	env := setupCLI(t)

	out, err := env.run(t, "seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "Seeded \"Avatar The Way of Water\" with id 1") {
		t.Fatalf("unexpected seed output: %s", out)
	}

	out, err = env.run(t, "seed")
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if !strings.Contains(out, "already present") {
		t.Errorf("expected seed to be a no-op, got: %s", out)
	}

	out, err = env.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "#1  Avatar The Way of Water (2022)  7.3/10  [id 1]") {
		t.Errorf("unexpected list output: %s", out)
	}
	if !strings.Contains(out, "I liked the water.") {
		t.Errorf("expected review in list output: %s", out)
	}

	out, err = env.run(t, "rate", "1", "9.5", "Even", "better", "twice")
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if !strings.Contains(out, "Rated movie 1: 9.5/10") {
		t.Errorf("unexpected rate output: %s", out)
	}

	out, err = env.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "9.5/10") || !strings.Contains(out, "Even better twice") {
		t.Errorf("expected updated rating and review: %s", out)
	}

	out, err = env.run(t, "delete", "1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "Deleted movie 1") {
		t.Errorf("unexpected delete output: %s", out)
	}

	if _, err := env.run(t, "delete", "1"); err == nil {
		t.Fatal("expected error deleting a missing movie")
	}
}

func TestRateValidation(t *testing.T) {
	env := setupCLI(t)
	if _, err := env.run(t, "seed"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := env.run(t, "rate", "1", "abc", "fine"); err == nil {
		t.Error("expected error for non-numeric rating")
	}
	if _, err := env.run(t, "rate", "1", "42", "fine"); err == nil {
		t.Error("expected error for out of range rating")
	}
	if _, err := env.run(t, "rate", "x", "5", "fine"); err == nil {
		t.Error("expected error for bad id")
	}

	out, err := env.run(t, "rate", "99", "5", "fine")
	if err == nil {
		t.Fatal("expected error for missing movie")
	}
	if !strings.Contains(out, "Movie not found") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestExportAndImport(t *testing.T) {
	env := setupCLI(t)
	if _, err := env.run(t, "seed"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	exportPath := filepath.Join(t.TempDir(), "movies.json")
	if _, err := env.run(t, "export", "--format", "json", "--output", exportPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var entries []map[string]interface{}
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(entries) != 1 || entries[0]["title"] != "Avatar The Way of Water" || entries[0]["rating"] != 7.3 {
		t.Fatalf("unexpected export: %v", entries)
	}

	other := &cliEnv{dbPath: filepath.Join(t.TempDir(), "other.db"), home: env.home}
	out, err := other.run(t, "import", "--input", exportPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "Imported 1 movies (0 skipped)") {
		t.Errorf("unexpected import output: %s", out)
	}

	out, err = other.run(t, "import", "--input", exportPath)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if !strings.Contains(out, "Imported 0 movies (1 skipped)") {
		t.Errorf("expected duplicate to be skipped: %s", out)
	}

	out, err = other.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "7.3/10") {
		t.Errorf("expected imported rating: %s", out)
	}
}

func TestExportCSVToStdout(t *testing.T) {
	env := setupCLI(t)
	if _, err := env.run(t, "seed"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	exportPath := filepath.Join(t.TempDir(), "movies.json")
	if _, err := env.run(t, "export", "--format", "json", "--output", exportPath); err != nil {
		t.Fatalf("export to file: %v", err)
	}

	out, err := env.run(t, "export", "--format", "csv")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(out, "Ranking,Title,Year,Rating,Review,ImgURL") {
		t.Errorf("unexpected csv header: %s", out)
	}
	if !strings.Contains(out, "1,Avatar The Way of Water,2022,7.3,I liked the water.,") {
		t.Errorf("unexpected csv row: %s", out)
	}

	if strings.Contains(out, "Exported") {
		t.Errorf("expected stdout export, got: %s", out)
	}

	if _, err := env.run(t, "export", "--format", "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}

	out, err = env.run(t, "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "[") {
		t.Errorf("expected default json export, got: %s", out)
	}
}

func TestConfigInitShowSet(t *testing.T) {
	env := setupCLI(t)

	if _, err := env.run(t, "config", "show"); err == nil {
		t.Fatal("expected error before init")
	}

	out, err := env.run(t, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, filepath.Join(env.home, "config.yaml")) {
		t.Errorf("unexpected init output: %s", out)
	}

	if _, err := env.run(t, "config", "set", "logging.level", "DEBUG"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	if _, err := env.run(t, "config", "set", "nope.key", "x"); err == nil {
		t.Error("expected error for unknown key")
	}

	out, err = env.run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "[logging]") || !strings.Contains(out, "level: debug") {
		t.Errorf("unexpected show output: %s", out)
	}
}

func TestSearchRequiresToken(t *testing.T) {
	env := setupCLI(t)

	if _, err := env.run(t, "search", "matrix"); err == nil {
		t.Fatal("expected error without TMDB_API_TOKEN")
	}
}

func fakeTMDB(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/search/movie":
			fmt.Fprint(w, `{"results":[
				{"id":603,"title":"The Matrix","release_date":"1999-03-30"},
				{"id":604,"title":"The Matrix Reloaded","release_date":"2003-05-15"}
			]}`)
		case r.URL.Path == "/movie/603":
			fmt.Fprint(w, `{"original_title":"The Matrix","release_date":"1999-03-30","poster_path":"/x.jpg","overview":"A hacker learns the truth."}`)
		case r.URL.Path == "/movie/604":
			fmt.Fprint(w, `{"original_title":"The Matrix Reloaded","release_date":"2003-05-15","poster_path":"/r.jpg","overview":"Neo returns."}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchAndAdd(t *testing.T) {
	env := setupCLI(t)
	srv := fakeTMDB(t)
	t.Setenv("TMDB_API_TOKEN", "test-token")
	t.Setenv("TMDB_BASE_URL", srv.URL)

	out, err := env.run(t, "search", "matrix")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Found 2 movie(s)") || !strings.Contains(out, "2. The Matrix Reloaded (2003)") {
		t.Errorf("unexpected search output: %s", out)
	}

	out, err = env.run(t, "add", "matrix", "--pick", "2")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, `Added "The Matrix Reloaded" (2003) with id 1`) {
		t.Errorf("unexpected add output: %s", out)
	}

	out, err = env.run(t, "add", "matrix", "--pick", "2")
	if err == nil {
		t.Fatal("expected duplicate add to fail")
	}
	if !strings.Contains(out, "already in your list") {
		t.Errorf("unexpected duplicate output: %s", out)
	}

	if _, err := env.run(t, "add", "matrix", "--pick", "5"); err == nil {
		t.Error("expected error for out of range pick")
	}
}

func TestAddWithoutPickUsesFirstResult(t *testing.T) {
	first := setupCLI(t)
	srv := fakeTMDB(t)
	t.Setenv("TMDB_API_TOKEN", "test-token")
	t.Setenv("TMDB_BASE_URL", srv.URL)
	if _, err := first.run(t, "add", "matrix", "--pick", "2"); err != nil {
		t.Fatalf("add with pick: %v", err)
	}

	second := &cliEnv{dbPath: filepath.Join(t.TempDir(), "fresh.db"), home: first.home}
	out, err := second.run(t, "add", "matrix")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, `Added "The Matrix" (1999) with id 1`) {
		t.Errorf("expected first result to be added, got: %s", out)
	}
}

func TestLogLevelFromConfig(t *testing.T) {
	env := setupCLI(t)

	out, err := env.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Contains(out, "database_opened") {
		t.Errorf("expected no debug logs at the default level, got: %s", out)
	}

	if _, err := env.run(t, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := env.run(t, "config", "set", "logging.level", "debug"); err != nil {
		t.Fatalf("config set: %v", err)
	}

	out, err = env.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "database_opened") {
		t.Errorf("expected debug logs after setting logging.level, got: %s", out)
	}

	t.Setenv("LOG_LEVEL", "error")
	out, err = env.run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Contains(out, "database_opened") {
		t.Errorf("expected LOG_LEVEL to override the config file, got: %s", out)
	}
}
