package migration

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoad_ParsesAndSorts(t *testing.T) {
	fsys := fstest.MapFS{
		"002_second.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"001_first.sql":  {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"README.md":      {Data: []byte("not a migration")},
	}

	migrations, err := NewRunner(nil, fsys).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("migrations = %d, want 2", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "first" {
		t.Errorf("first = %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "second" {
		t.Errorf("second = %+v", migrations[1])
	}
	if !strings.Contains(migrations[0].SQL, "CREATE TABLE a") {
		t.Errorf("sql = %q", migrations[0].SQL)
	}
}

func TestLoad_RejectsBadFilenames(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"no underscore":    {"001.sql": {Data: []byte("SELECT 1;")}},
		"non-numeric":      {"abc_name.sql": {Data: []byte("SELECT 1;")}},
		"zero version":     {"000_name.sql": {Data: []byte("SELECT 1;")}},
		"duplicate number": {"001_a.sql": {Data: []byte("SELECT 1;")}, "001_b.sql": {Data: []byte("SELECT 1;")}},
	}
	for name, fsys := range cases {
		if _, err := NewRunner(nil, fsys).Load(); err == nil {
			t.Errorf("%s: want error", name)
		}
	}
}

func TestLatestVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"001_first.sql": {Data: []byte("SELECT 1;")},
		"003_third.sql": {Data: []byte("SELECT 1;")},
	}
	latest, err := NewRunner(nil, fsys).LatestVersion()
	if err != nil {
		t.Fatalf("LatestVersion: %v", err)
	}
	if latest != 3 {
		t.Errorf("latest = %d, want 3", latest)
	}

	latest, err = NewRunner(nil, fstest.MapFS{}).LatestVersion()
	if err != nil || latest != 0 {
		t.Errorf("empty dir latest = %d, %v", latest, err)
	}
}
