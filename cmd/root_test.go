package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigFindsDefaultFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	payload := "alpha: 0.7\nbeta: 0.3\nnum-keywords: 5\nlisten: \":9001\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, app+".yaml"), []byte(payload), 0o644))
	t.Chdir(dir)

	cfgFile = ""
	initConfig()

	config, err := getConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.7, config.Alpha)
	assert.Equal(t, 0.3, config.Beta)
	assert.Equal(t, 5, config.Keywords)
	assert.Equal(t, ":9001", config.Listen)
}

func TestInitConfigMissingDefaultFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Chdir(t.TempDir())

	cfgFile = ""
	initConfig()

	config, err := getConfig()
	require.NoError(t, err)
	assert.Zero(t, config.Alpha)
}
