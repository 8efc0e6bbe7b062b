package http_test

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/kardex-api/docs"
)

var routeParam = regexp.MustCompile(`:(\w+)`)

// Cada ruta registrada debe estar documentada en el OpenAPI servido en /docs, y viceversa.
func TestRouter_RutasDocumentadasEnOpenAPI(t *testing.T) {
	app := buildTestApp(t)

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	registered := map[string]bool{}
	for _, r := range app.GetRoutes(true) {
		switch r.Method {
		case "GET", "POST", "PATCH", "DELETE":
		default:
			continue
		}
		path := strings.TrimRight(r.Path, "/")
		path = routeParam.ReplaceAllString(path, "{$1}")
		key := strings.ToLower(r.Method) + " " + path
		registered[key] = true
		assert.Contains(t, doc.Paths[path], strings.ToLower(r.Method), "ruta sin documentar: %s", key)
	}

	for path, ops := range doc.Paths {
		for method := range ops {
			assert.True(t, registered[method+" "+path], "documentada pero no registrada: %s %s", method, path)
		}
	}
}
