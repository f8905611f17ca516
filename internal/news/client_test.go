package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const listingHTML = `<html><body><div id="newsct"><div class="section_latest"><div>
<div class="section_latest_article _CONTENT_LIST _PERSIST_META"><ul>
<li><a href="https://n.news.example/article/1"> First headline </a></li>
<li><a href="https://n.news.example/article/2">Second headline</a></li>
<li><a href="">No link</a></li>
<li><a href="https://n.news.example/article/3">Third headline</a></li>
</ul></div></div></div></div></body></html>`

func TestHeadlinesExtractsTitleAndURL(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, listingHTML)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	category := Category{Name: "IT/Science", SectionPath: "105/230"}

	headlines, err := client.Headlines(context.Background(), category, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/breakingnews/section/105/230" {
		t.Fatalf("unexpected listing path %q", gotPath)
	}
	if len(headlines) != 3 {
		t.Fatalf("expected 3 headlines (entry without href skipped), got %d", len(headlines))
	}
	if headlines[0].Title != "First headline" {
		t.Fatalf("title should be trimmed, got %q", headlines[0].Title)
	}
	if headlines[0].URL != "https://n.news.example/article/1" {
		t.Fatalf("unexpected URL %q", headlines[0].URL)
	}
}

func TestHeadlinesHonorsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingHTML)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	headlines, err := client.Headlines(context.Background(), Category{Name: "x", SectionPath: "100/200"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headlines) != 2 {
		t.Fatalf("expected the per-category cap to apply, got %d", len(headlines))
	}
}

func TestArticleBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><article id="dic_area">
			First paragraph.
			Second	paragraph.
		</article></body></html>`)
	}))
	defer server.Close()

	client := NewClient()
	body, err := client.ArticleBody(context.Background(), server.URL+"/article/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "First paragraph. Second paragraph." {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestArticleBodyMissingContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>not an article</p></body></html>`)
	}))
	defer server.Close()

	client := NewClient()
	if _, err := client.ArticleBody(context.Background(), server.URL+"/article/1"); err == nil {
		t.Fatal("expected an error for a page without a recognized body container")
	}
}
