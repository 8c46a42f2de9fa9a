package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocIsRegisteredAndValidJSON(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Info  map[string]string          `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "Agentes Admin API", doc.Info["title"])
	for _, path := range []string{"/agentes", "/actividades/{id}/agentes/{nip}/asistencia", "/actualizar_asistencia", "/resumen/export"} {
		assert.Contains(t, doc.Paths, path)
	}
}
