package iojson

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]int{"slides": 3})
	require.NoError(t, err)

	assert.JSONEq(t, `{"slides": 3}`, out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalFailure(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, map[string]any{"ch": make(chan int)})
	require.Error(t, err)

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "error marshaling in iojson.Write")
}

func TestMarshalError(t *testing.T) {
	got := MarshalError("deck failed", map[string]any{"path": "deck.yaml"})

	var decoded Error
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "deck failed", decoded.Message)
	assert.Equal(t, "deck.yaml", decoded.Data["path"])
}
