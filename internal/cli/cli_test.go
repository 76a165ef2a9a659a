package cli

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
	"strconv"
	"strings"
	"testing"

	"github.com/me/prodview/internal/catalog"
	"github.com/me/prodview/pkg/model"
)

// startCatalog serves n products in the shape of the public catalog service.
// A search for "fail" answers 500.
func startCatalog(t *testing.T, n int) string {
	t.Helper()
	products := make([]model.Product, n)
	for i := range products {
		id := i + 1
		products[i] = model.Product{
			ID:          id,
			Title:       fmt.Sprintf("Product %02d", id),
			Description: "A test product.",
			Price:       float64(n + 1 - id),
			Images:      []string{fmt.Sprintf("https://img.test/%d.jpg", id)},
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		lo := min(skip, n)
		hi := min(skip+limit, n)
		json.NewEncoder(w).Encode(map[string]any{
			"products": products[lo:hi],
			"total":    n,
			"skip":     skip,
			"limit":    limit,
		})
	})
	mux.HandleFunc("/products/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "fail" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		matched := []model.Product{}
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Title), strings.ToLower(q)) {
				matched = append(matched, p)
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"products": matched})
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts.URL
}

// runCLI executes the root command with args and returns its combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := execute(context.Background(), root)
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "prodview dev") {
		t.Errorf("output = %q, want version line", out)
	}
}

func TestListCmd(t *testing.T) {
	url := startCatalog(t, 25)

	out, err := runCLI(t, "list", "--base-url", url, "--pages", "3", "--concurrency", "2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	p1 := strings.Index(out, "Page 1 of 3")
	p2 := strings.Index(out, "Page 2 of 3")
	p3 := strings.Index(out, "Page 3 of 3")
	if p1 < 0 || p2 < p1 || p3 < p2 {
		t.Fatalf("pages missing or out of order:\n%s", out)
	}
	for _, want := range []string{"Product 01", "Product 25", "Price: $25", "https://img.test/1.jpg"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestListCmd_Sort(t *testing.T) {
	url := startCatalog(t, 25)

	out, err := runCLI(t, "list", "--base-url", url, "--page", "2", "--page-size", "5", "--sort", "price-asc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Page 2 of 5") {
		t.Errorf("output missing page label:\n%s", out)
	}
	// Page 2 holds products 6..10; ascending price puts 10 first.
	if i, j := strings.Index(out, "Product 10"), strings.Index(out, "Product 06"); i < 0 || j < 0 || i > j {
		t.Errorf("products not sorted by ascending price:\n%s", out)
	}
	if strings.Contains(out, "Product 11") {
		t.Errorf("output contains a product from page 3")
	}
}

func TestListCmd_InvalidFlags(t *testing.T) {
	url := startCatalog(t, 5)

	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"unknown sort", []string{"--sort", "rainbow"}, model.ErrUnknownSortKey},
		{"zero pages", []string{"--pages", "0"}, nil},
		{"zero concurrency", []string{"--concurrency", "0"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"list", "--base-url", url}, tt.args...)
			_, err := runCLI(t, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestListCmd_ConfigFile(t *testing.T) {
	url := startCatalog(t, 25)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := fmt.Sprintf("base_url: %s\npage_size: 5\n", url)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "list", "--config", path)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Page 1 of 5") {
		t.Errorf("page size from config not applied:\n%s", out)
	}
}

func TestSearchCmd(t *testing.T) {
	url := startCatalog(t, 25)

	out, err := runCLI(t, "search", "--base-url", url, "--sort", "title", "Product", "2")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, `6 results for "Product 2"`) {
		t.Errorf("output missing result count:\n%s", out)
	}
	if strings.Contains(out, "Product 19") {
		t.Errorf("output contains a non-matching product")
	}
}

func TestSearchCmd_NoResults(t *testing.T) {
	url := startCatalog(t, 25)

	out, err := runCLI(t, "search", "--base-url", url, "phone")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "No products found.") {
		t.Errorf("output missing empty notice:\n%s", out)
	}
}

func TestSearchCmd_HTTPError(t *testing.T) {
	url := startCatalog(t, 25)

	_, err := runCLI(t, "search", "--base-url", url, "fail")
	if err == nil {
		t.Fatal("expected error")
	}
	var statusErr *catalog.HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusInternalServerError {
		t.Fatalf("error = %v, want HTTP 500", err)
	}
	if !strings.Contains(err.Error(), "HTTP error! status: 500") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestRoot_InvalidBaseURL(t *testing.T) {
	_, err := runCLI(t, "list", "--base-url", "not a url")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("error = %v", err)
	}
}

func TestRoot_LogFile(t *testing.T) {
	url := startCatalog(t, 5)
	logPath := filepath.Join(t.TempDir(), "logs", "prodview.log")

	if _, err := runCLI(t, "list", "--base-url", url, "--debug", "--log-file", logPath); err != nil {
		t.Fatalf("list: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "HTTP request") {
		t.Errorf("log missing request entry:\n%s", data)
	}
}

func TestSearchCmd_Follow(t *testing.T) {
	url := startCatalog(t, 25)
	t.Setenv("PRODVIEW_DEBOUNCE", "20ms")

	var out bytes.Buffer
	t.Setenv("HOME", t.TempDir())
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader("Prod\nProduct\nProduct 2\n"))
	root.SetArgs([]string{"search", "--base-url", url, "--follow"})
	if err := execute(context.Background(), root); err != nil {
		t.Fatalf("search --follow: %v", err)
	}

	if !strings.Contains(out.String(), `6 results for "Product 2"`) {
		t.Errorf("output missing settled query:\n%s", out.String())
	}
	if strings.Contains(out.String(), `results for "Prod"`) {
		t.Errorf("intermediate query was searched:\n%s", out.String())
	}
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	url := startCatalog(t, 5)

	_, err := runCLI(t, "search", "--base-url", url)
	if !errors.Is(err, catalog.ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestRoot_LogFileClosedAfterFailure(t *testing.T) {
	url := startCatalog(t, 5)
	logPath := filepath.Join(t.TempDir(), "prodview.log")

	_, err := runCLI(t, "search", "--base-url", url, "--debug", "--log-file", logPath, "fail")
	if err == nil {
		t.Fatal("expected error")
	}
	if closeLog != nil {
		t.Error("log file still open after a failed command")
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "HTTP response") {
		t.Errorf("log missing response entry:\n%s", data)
	}
}
