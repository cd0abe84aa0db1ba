package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ops.json")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o600))
	return path
}

func TestEdit_BuildsEthanolFromMethane(t *testing.T) {
	script := writeScript(t, `[
		{"op": "extend_chain", "target": 0},
		{"op": "attach_substituent", "target": 1, "substituent": "hydroxyl"}
	]`)

	out, _, err := execCLI(t, "edit", "--template", "methane", "--ops", script)
	require.NoError(t, err)

	assert.Contains(t, out, "C2H6O")
	assert.Contains(t, out, "ethanol")
	assert.Contains(t, out, "CCO")
}

func TestEdit_Unsaturate(t *testing.T) {
	script := writeScript(t, `[
		{"op": "unsaturate_bond", "target": 0, "other": 1}
	]`)

	out, _, err := execCLI(t, "edit", "--template", "ethane", "--ops", script)
	require.NoError(t, err)

	assert.Contains(t, out, "C2H4")
	assert.Contains(t, out, "ethene")
}

func TestEdit_ShowAtoms(t *testing.T) {
	out, _, err := execCLI(t, "edit", "--template", "ethanol", "--show-atoms")
	require.NoError(t, err)

	assert.Contains(t, out, "Atoms (3)")
	assert.Contains(t, out, "[0]")
	assert.Contains(t, out, "[2]")
}

func TestEdit_RejectedStepReportsPosition(t *testing.T) {
	script := writeScript(t, `[
		{"op": "shorten_chain", "target": 1}
	]`)

	_, _, err := execCLI(t, "edit", "--template", "butane", "--ops", script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1")
}

func TestEdit_AtomIndexOutOfRange(t *testing.T) {
	script := writeScript(t, `[
		{"op": "extend_chain", "target": 9}
	]`)

	_, _, err := execCLI(t, "edit", "--template", "methane", "--ops", script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestEdit_BadScript(t *testing.T) {
	script := writeScript(t, `{not json`)

	_, _, err := execCLI(t, "edit", "--template", "methane", "--ops", script)
	require.Error(t, err)
}
