package std

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates(t *testing.T) {
	var nilMap map[string]int
	var nilPtr *int

	assert.True(t, IsNullOrEmpty(nil))
	assert.True(t, IsNullOrEmpty(""))
	assert.True(t, IsNullOrEmpty(nilMap))
	assert.True(t, IsNullOrEmpty(nilPtr))
	assert.True(t, IsNullOrEmpty([]int{}))
	assert.False(t, IsNullOrEmpty(" "))
	assert.False(t, IsNullOrEmpty(0))

	assert.True(t, IsNullOrWhitespace(" \t\n"))
	assert.True(t, IsNullOrWhitespace(nil))
	assert.False(t, IsNullOrWhitespace("x"))
	assert.False(t, IsNullOrWhitespace(3))

	assert.True(t, Valuable("x"))
	assert.True(t, Valuable([]int{1}))
	assert.False(t, Valuable(""))
}

func TestToBoolean(t *testing.T) {
	for _, v := range []any{true, "true", "TRUE", " yes ", "1", "on", 1, 2, int64(1), int64(-3), uint8(1), float32(0.5), 1.0} {
		assert.True(t, ToBoolean(v), "%#v", v)
	}
	for _, v := range []any{false, "false", "no", "", "2", 0, int64(0), 0.0, math.NaN(), nil, struct{}{}} {
		assert.False(t, ToBoolean(v), "%#v", v)
	}
}

func TestCaseConversions(t *testing.T) {
	tests := []struct {
		in                         string
		camel, pascal, kebab, snake string
	}{
		{"hello world", "helloWorld", "HelloWorld", "hello-world", "hello_world"},
		{"background-color", "backgroundColor", "BackgroundColor", "background-color", "background_color"},
		{"userId", "userId", "UserId", "user-id", "user_id"},
		{"XMLHttpRequest", "xmlHttpRequest", "XmlHttpRequest", "xml-http-request", "xml_http_request"},
		{"  snake_case_thing ", "snakeCaseThing", "SnakeCaseThing", "snake-case-thing", "snake_case_thing"},
		{"", "", "", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.camel, CamelCase(tt.in), "camel %q", tt.in)
		assert.Equal(t, tt.pascal, PascalCase(tt.in), "pascal %q", tt.in)
		assert.Equal(t, tt.kebab, KebabCase(tt.in), "kebab %q", tt.in)
		assert.Equal(t, tt.snake, SnakeCase(tt.in), "snake %q", tt.in)
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Hello World", Capitalize("hELLO wORLD"))
	assert.Equal(t, "Hello world", CapitalizeFirst("hELLO WORLD"))
	assert.Equal(t, "Élan", CapitalizeFirst("éLAN"))
	assert.Equal(t, "", CapitalizeFirst(""))
}

func TestRemoveAccents(t *testing.T) {
	assert.Equal(t, "Creme brulee", RemoveAccents("Crème brûlée"))
	assert.Equal(t, "Sao Tome", RemoveAccents("São Tomé"))
	assert.Equal(t, "plain", RemoveAccents("plain"))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)
	tests := map[string]string{
		"YYYY-MM-DD":          "2024-03-07",
		"DD/MM/YY":            "07/03/24",
		"D.M.YYYY":            "7.3.2024",
		"YYYY-MM-DD HH:mm:ss": "2024-03-07 09:05:03",
		"[at] HH:mm":          "[at] 09:05",
	}
	for layout, want := range tests {
		assert.Equal(t, want, FormatDate(ts, layout), layout)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "text/css")
			w.Write([]byte("body{}"))
		case "/slow":
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	resp, err := Fetch(context.Background(), srv.URL+"/ok", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(resp.Body))
	assert.Equal(t, "text/css", resp.ContentType)

	_, err = Fetch(context.Background(), srv.URL+"/missing", time.Second)
	assert.ErrorContains(t, err, "HTTP 404")

	start := time.Now()
	_, err = Fetch(context.Background(), srv.URL+"/slow", 50*time.Millisecond)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://a.test/css/site.css", ResolveURL("https://a.test/index.html", "css/site.css"))
	assert.Equal(t, "https://b.test/x", ResolveURL("https://a.test/", "https://b.test/x"))
	assert.True(t, IsNetworkURL("http://x"))
	assert.False(t, IsNetworkURL("file:///x"))
}
