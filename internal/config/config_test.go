package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcforge/xcforge/internal/pbxproj"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
	return dir
}

func TestLoadComplete(t *testing.T) {
	dir := writeManifest(t, `product_name: Aria
bundle_id: com.example.aria
deployment_target: "17.0"
style: appdelegate
capabilities:
  NSMicrophoneUsageDescription: Aria needs microphone access
`)

	p, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "Aria", p.ProductName)
	assert.Equal(t, "com.example.aria", p.BundleID)
	assert.Equal(t, "17.0", p.DeploymentTarget)
	assert.Equal(t, StyleAppDelegate, p.Style)
	assert.Equal(t, "Aria needs microphone access", p.Capabilities["NSMicrophoneUsageDescription"])
	require.NoError(t, p.Validate())
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := writeManifest(t, `product_name: Aria
bundle_id: com.example.aria
`)

	p, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "16.0", p.DeploymentTarget)
	assert.Equal(t, StyleSwiftUI, p.Style)
}

func TestLoadMissingManifest(t *testing.T) {
	dir := t.TempDir()

	assert.False(t, Exists(dir))
	_, err := Load(dir)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Project {
		return &Project{
			ProductName:      "Aria",
			BundleID:         "com.example.aria",
			DeploymentTarget: "16.0",
			Style:            StyleSwiftUI,
		}
	}

	require.NoError(t, base().Validate())

	p := base()
	p.ProductName = ""
	assert.ErrorIs(t, p.Validate(), pbxproj.ErrMissingParam)

	p = base()
	p.BundleID = "nodots"
	assert.ErrorIs(t, p.Validate(), pbxproj.ErrBadInput)

	p = base()
	p.Style = "storyboard"
	assert.ErrorIs(t, p.Validate(), pbxproj.ErrBadInput)
}

func TestMarshalRoundTrip(t *testing.T) {
	p := &Project{
		ProductName:      "Aria",
		BundleID:         "com.example.aria",
		DeploymentTarget: "16.0",
		Style:            StyleSwiftUI,
		Capabilities:     map[string]string{"NSCameraUsageDescription": "Aria needs camera access"},
	}

	data, err := p.Marshal()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), data, 0644))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}
