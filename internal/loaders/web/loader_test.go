package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Measurement Manual</title><style>body { color: red }</style></head>
<body>
<nav>home | docs | about</nav>
<main>
<h1>Distance Measurement</h1>
<p>` + "The device measures distances between two points using a laser rangefinder. Accuracy is within one millimetre under normal conditions." + `</p>
</main>
<footer>copyright</footer>
<script>console.log("hi")</script>
</body>
</html>`

func TestLoader_Type(t *testing.T) {
	assert.Equal(t, domain.TypeWeb, New().Type())
}

func TestLoader_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	pages, err := New().Load(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	assert.Equal(t, "Measurement Manual", pages[0].Section)
	assert.Contains(t, pages[0].Text, "laser rangefinder")
	assert.NotContains(t, pages[0].Text, "console.log")
	assert.NotContains(t, pages[0].Text, "home | docs | about")
}

func TestLoader_Load_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New().Load(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "404"))
}
