package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "classify", "10K", "0805", "Resistor", "100pcs")

	require.NoError(t, err)
	assert.Contains(t, out, "10K 0805 Resistor 100pcs")
	assert.Contains(t, out, "Category: Passive Components")
	assert.Contains(t, out, "Subcategory: Resistors")
	assert.Contains(t, out, "Package: 0805")
	assert.Contains(t, out, "Resistance: 10000Ω")
}

func TestClassifyCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "classify", "--json", "ESP32 WiFi Bluetooth module")

	require.NoError(t, err)
	assert.Contains(t, out, `"category": "Integrated Circuits"`)
	assert.Contains(t, out, `"WIFI"`)
}

func TestClassifyCmd_RequiresTitle(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "classify")

	assert.ErrorContains(t, err, "requires at least 1 arg(s)")
}
