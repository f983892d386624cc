package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	assert.NotNil(t, tmpl.Lookup("index.html"))
	assert.NotNil(t, tmpl.Lookup("result.html"))

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "index.html", nil))
	for _, field := range []string{"Age", "SystolicPressure", "SmokerDays"} {
		assert.Contains(t, buf.String(), `name="`+field+`"`)
	}
}
