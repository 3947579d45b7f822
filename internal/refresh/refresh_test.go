package refresh

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ravendevteam/toolbox/internal/catalog"
	terrors "github.com/ravendevteam/toolbox/internal/errors"
)

const digest = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

func catalogJSON(updateURL, selfVersion string) string {
	doc := `{"packages":[{"name":"toolbox","version":"` + selfVersion + `","url":"https://example.com/toolbox","sha256":"` + digest + `","os":["Windows","macOS","Linux"]}]`
	if updateURL != "" {
		doc += `,"updateurl":"` + updateURL + `"`
	}
	return doc + "}"
}

type fakeGetter struct {
	body string
	err  error
	urls []string
}

func (g *fakeGetter) Get(ctx context.Context, url string) ([]byte, error) {
	g.urls = append(g.urls, url)
	if g.err != nil {
		return nil, g.err
	}
	return []byte(g.body), nil
}

func TestNeedsRefresh(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	withURL := &catalog.Catalog{UpdateURL: "https://example.com/packages.json"}
	withoutURL := &catalog.Catalog{}

	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"no state", State{Catalog: withURL}, true},
		{"no catalog", State{HasState: true, LastUpdate: now, Catalog: nil}, true},
		{"no updateurl", State{HasState: true, LastUpdate: now, Catalog: withoutURL}, true},
		{"fresh", State{HasState: true, LastUpdate: now.Add(-time.Hour), Catalog: withURL}, false},
		{"exactly one day", State{HasState: true, LastUpdate: now.Add(-86400 * time.Second), Catalog: withURL}, false},
		{"one day and a second", State{HasState: true, LastUpdate: now.Add(-86401 * time.Second), Catalog: withURL}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsRefresh(now, tt.state, DefaultInterval); got != tt.want {
				t.Errorf("NeedsRefresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidUpdateURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://raw.githubusercontent.com/ravendevteam/toolbox/main/packages.json", true},
		{"HTTP://EXAMPLE.COM/p.json", true},
		{"ftp://mirror.example.org/packages.json", true},
		{"file:///etc/packages.json", false},
		{"https://localhost/packages.json", false},
		{"not a url", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidUpdateURL(tt.url); got != tt.want {
			t.Errorf("ValidUpdateURL(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

type fixture struct {
	dir    string
	store  *catalog.Store
	getter *fakeGetter
	out    *bytes.Buffer
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	return &fixture{
		dir:    dir,
		store:  catalog.NewStore(filepath.Join(dir, "packages.json"), filepath.Join(dir, "lastupdate"), nil),
		getter: &fakeGetter{},
		out:    &bytes.Buffer{},
		now:    time.Unix(1_700_000_000, 0),
	}
}

func (f *fixture) refresher(override string) *Refresher {
	return New(Options{
		Store:       f.store,
		Getter:      f.getter,
		OverrideURL: override,
		DefaultURL:  "https://default.example.com/packages.json",
		Version:     "2.0.0",
		Now:         func() time.Time { return f.now },
		Out:         f.out,
	})
}

func TestCheck_FirstRunUsesDefault(t *testing.T) {
	f := newFixture(t)
	f.getter.body = catalogJSON("https://mirror.example.com/packages.json", "2.0.0")

	cat, err := f.refresher("").Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if cat == nil || len(cat.Packages) != 1 {
		t.Fatalf("unexpected catalog: %+v", cat)
	}
	if len(f.getter.urls) != 1 || f.getter.urls[0] != "https://default.example.com/packages.json" {
		t.Errorf("fetched %v", f.getter.urls)
	}
	if !strings.Contains(f.out.String(), "Using default update URL") {
		t.Errorf("missing default URL notice:\n%s", f.out)
	}

	last, ok := f.store.LastUpdate()
	if !ok || !last.Equal(f.now) {
		t.Errorf("LastUpdate() = %v, %v", last, ok)
	}
}

func TestCheck_FreshCatalogIsNotFetched(t *testing.T) {
	f := newFixture(t)
	if _, err := f.store.Replace([]byte(catalogJSON("https://mirror.example.com/packages.json", "2.0.0")), catalog.FormatJSON); err != nil {
		t.Fatal(err)
	}
	if err := f.store.MarkUpdated(f.now.Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}

	r := f.refresher("")
	if _, err := r.Check(context.Background()); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(f.getter.urls) != 0 {
		t.Errorf("fresh catalog was fetched from %v", f.getter.urls)
	}
	if r.Refreshed() {
		t.Error("Refreshed() should be false")
	}
}

func TestCheck_StaleCatalogUsesItsUpdateURL(t *testing.T) {
	f := newFixture(t)
	if _, err := f.store.Replace([]byte(catalogJSON("https://mirror.example.com/packages.json", "2.0.0")), catalog.FormatJSON); err != nil {
		t.Fatal(err)
	}
	if err := f.store.MarkUpdated(f.now.Add(-48 * time.Hour)); err != nil {
		t.Fatal(err)
	}
	f.getter.body = catalogJSON("https://mirror.example.com/packages.json", "2.1.0")

	r := f.refresher("https://override.example.com/packages.json")
	if _, err := r.Check(context.Background()); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(f.getter.urls) != 1 || f.getter.urls[0] != "https://mirror.example.com/packages.json" {
		t.Errorf("fetched %v", f.getter.urls)
	}
	if !r.Refreshed() {
		t.Error("Refreshed() should be true")
	}
	if !strings.Contains(f.out.String(), "Toolbox 2.1.0 is available") {
		t.Errorf("missing advisory:\n%s", f.out)
	}
}

func TestRefresh_OverrideBeatsDefault(t *testing.T) {
	f := newFixture(t)
	f.getter.body = catalogJSON("", "2.0.0")

	if _, err := f.refresher("https://override.example.com/packages.json").Refresh(context.Background(), nil); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if f.getter.urls[0] != "https://override.example.com/packages.json" {
		t.Errorf("fetched %v", f.getter.urls)
	}
	if strings.Contains(f.out.String(), "Using default update URL") {
		t.Error("override should not print the default notice")
	}
}

func TestRefresh_InvalidDownloadKeepsCachedCatalog(t *testing.T) {
	f := newFixture(t)
	original := catalogJSON("https://mirror.example.com/packages.json", "2.0.0")
	if _, err := f.store.Replace([]byte(original), catalog.FormatJSON); err != nil {
		t.Fatal(err)
	}
	f.getter.body = `<html>rate limited</html>`

	cat, err := f.refresher("").Check(context.Background())
	if !errors.Is(err, terrors.ErrCatalogParse) {
		t.Fatalf("expected ErrCatalogParse, got %v", err)
	}
	if cat == nil {
		t.Fatal("cached catalog should still be returned")
	}

	data, _ := os.ReadFile(f.store.Path())
	if string(data) != original {
		t.Error("cached catalog was overwritten by invalid content")
	}
	if _, ok := f.store.LastUpdate(); ok {
		t.Error("failed refresh must not record a refresh time")
	}
}

func TestAdvisory(t *testing.T) {
	cat := &catalog.Catalog{Packages: []catalog.Package{{Name: "Toolbox", Version: "2.0.0"}}}

	if _, ok := Advisory(cat, "2.0.0"); ok {
		t.Error("same version should not advise")
	}
	if _, ok := Advisory(cat, "v2.0.0"); ok {
		t.Error("leading v should be ignored")
	}
	if msg, ok := Advisory(cat, "1.9.0"); !ok || !strings.Contains(msg, "2.0.0") {
		t.Errorf("Advisory() = %q, %v", msg, ok)
	}
	if _, ok := Advisory(&catalog.Catalog{}, "1.0"); ok {
		t.Error("catalog without toolbox entry should not advise")
	}
}
