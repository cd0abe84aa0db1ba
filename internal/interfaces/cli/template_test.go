package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateList_Table(t *testing.T) {
	out, _, err := execCLI(t, "template", "list", "-o", "table")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "benzene")
	assert.Contains(t, out, "C6H6")
	assert.Contains(t, out, "acetic-acid")
}

func TestTemplateShow_Ethanol(t *testing.T) {
	out, _, err := execCLI(t, "template", "show", "ethanol")
	require.NoError(t, err)

	assert.Contains(t, out, "C2H6O")
	assert.Contains(t, out, "ethanol")
	assert.Contains(t, out, "CCO")
	assert.Contains(t, out, "alcohol")
	assert.Contains(t, out, "Validation:   ok")
}

func TestTemplateShow_Unknown(t *testing.T) {
	_, _, err := execCLI(t, "template", "show", "unobtainium")
	require.Error(t, err)
}
