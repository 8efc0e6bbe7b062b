package docs

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestReadDoc_DocumentoRegistradoEsJSONValido(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Info  map[string]any            `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "Kardex API", doc.Info["title"])
	assert.Contains(t, doc.Paths, "/api/products/{id}/logs")
	assert.Contains(t, doc.Paths["/api/products/{id}/logs/{index}"], "patch")
}

func TestReadDoc_EsElMismoArchivoServido(t *testing.T) {
	fileRaw, err := os.ReadFile("swagger.json")
	require.NoError(t, err)
	regRaw, err := swag.ReadDoc()
	require.NoError(t, err)

	assert.JSONEq(t, string(fileRaw), regRaw)
}
