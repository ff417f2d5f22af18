package resource

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestFetcher_Files(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "site.css", "p { color: red }")

	f := NewFetcher(dir, 0)
	body, ct, err := f.Fetch(context.Background(), "site.css")
	require.NoError(t, err)
	assert.Equal(t, "p { color: red }", string(body))
	assert.Equal(t, "text/css", ct)

	_, _, err = f.Fetch(context.Background(), "missing.css")
	assert.Error(t, err)
}

func TestFetcher_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/css/site.css":
			w.Header().Set("Content-Type", "text/css")
			w.Write([]byte("div { width: 10px }"))
		case "/logo.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte{0x89, 'P', 'N', 'G'})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL+"/index.html", time.Second)
	css, err := FetchCSS(context.Background(), f, "css/site.css")
	require.NoError(t, err)
	assert.Equal(t, "div { width: 10px }", css)

	_, err = FetchCSS(context.Background(), f, "logo.png")
	assert.ErrorContains(t, err, "unexpected content type")

	_, _, err = f.Fetch(context.Background(), srv.URL+"/nope")
	assert.ErrorContains(t, err, "404")
}

func TestPageRenderer_LinkedStylesheetAndScripts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.css", "#box { height: 40px; background-color: red }")
	page := `<html><head><link rel="stylesheet" href="page.css"></head>
<body style="margin: 0"><div id="box"></div>
<script>document.getElementById("box").style.width = "30px";</script>
</body></html>`

	r := NewPageRenderer(NewFetcher(dir, 0))
	p, err := r.Load(context.Background(), page, 200, 100)
	require.NoError(t, err)

	box := p.Doc.GetElementByID("box")
	require.NotNil(t, box)
	rect := p.Layout.BoundingClientRect(box)
	assert.Equal(t, 30.0, rect.Width())
	assert.Equal(t, 40.0, rect.Height())
}

func TestPageRenderer_ScriptsDisabled(t *testing.T) {
	page := `<div id="box" style="width: 10px; height: 10px"></div>
<script>document.getElementById("box").style.width = "30px";</script>`

	p, err := NewPageRenderer(nil, WithScripts(false)).Load(context.Background(), page, 200, 100)
	require.NoError(t, err)
	assert.Equal(t, 10.0, p.Layout.BoundingClientRect(p.Doc.GetElementByID("box")).Width())
}

func TestPageRenderer_FailingScriptIsLogged(t *testing.T) {
	var buf bytes.Buffer
	page := `<div id="box" style="height: 10px"></div><script>throw new Error("nope")</script>`

	r := NewPageRenderer(nil, WithLogger(log.New(&buf)))
	p, err := r.Load(context.Background(), page, 200, 100)
	require.NoError(t, err)
	assert.NotNil(t, p.Doc.GetElementByID("box"))
	assert.Contains(t, buf.String(), "script failed")
}

func TestPageRenderer_ExtraScriptsAndRelayout(t *testing.T) {
	page := `<body style="margin: 0"><div id="a" style="height: 10px"></div></body>`
	r := NewPageRenderer(nil, WithExtraScripts(
		`document.body.appendChild(zenkai.createDiv({id: "b", style: "height: 5px"}));`,
	))
	p, err := r.Load(context.Background(), page, 100, 100)
	require.NoError(t, err)

	b := p.Doc.GetElementByID("b")
	require.NotNil(t, b)
	assert.Equal(t, 10.0, p.Layout.BoundingClientRect(b).Top)

	b.SetAttribute("style", "height: 25px")
	p.Relayout()
	assert.Equal(t, 25.0, p.Layout.BoundingClientRect(b).Height())
}

func TestPageRenderer_RenderWithFocus(t *testing.T) {
	page := `<body style="margin: 0"><div id="a" style="margin: 10px; width: 30px; height: 30px; background-color: red"></div></body>`
	target := image.NewRGBA(image.Rect(0, 0, 80, 80))

	require.NoError(t, NewPageRenderer(nil, WithFocus("#a")).Render(context.Background(), page, target))

	inside := color.RGBAModel.Convert(target.At(25, 25)).(color.RGBA)
	assert.Equal(t, uint8(255), inside.R)
	assert.Equal(t, uint8(0), inside.G)

	ring := color.RGBAModel.Convert(target.At(9, 25)).(color.RGBA)
	assert.Equal(t, uint8(0x1e), ring.R)
	assert.Equal(t, uint8(0x90), ring.G)
}
