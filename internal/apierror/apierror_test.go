package apierror

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopes_JSON(t *testing.T) {
	b, err := json.Marshal(New(CodeConflicto, "El lote ya fue vendido"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"conflicto","detail":"El lote ya fue vendido"}`, string(b))

	b, err = json.Marshal(NewValidation(map[string]string{"monto": "gt"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"validacion","detail":"Error de validación","fields":{"monto":"gt"}}`, string(b))

	assert.Equal(t, CodeInterno, Interno().Code)
}
