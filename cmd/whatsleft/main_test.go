package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmcdole/whatsleft/internal/config"
	"github.com/mmcdole/whatsleft/internal/domain"
	"github.com/mmcdole/whatsleft/internal/store"
)

func writeConfig(t *testing.T) (cfgPath, dbPath string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Store.Path = filepath.Join(dir, "whatsleft.db")
	cfg.Logging.File = filepath.Join(dir, "whatsleft.log")

	path, err := config.SaveConfig(cfg, filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	return path, cfg.Store.Path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestVersionFlag(t *testing.T) {
	require.Equal(t, "whatsleft dev\n", execute(t, "--version"))
}

func TestResetClearsOnboardingFlags(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.SetFlag(domain.PrefTutorialCompleted))
	require.NoError(t, st.SetFlag(domain.PrefScannerGuidanceShown))
	require.NoError(t, st.Close())

	out := execute(t, "--config", cfgPath, "flags")
	require.Contains(t, out, "tutorialCompleted    true")

	require.Equal(t, "Onboarding reset.\n", execute(t, "--config", cfgPath, "reset"))

	out = execute(t, "--config", cfgPath, "flags")
	require.Contains(t, out, "tutorialCompleted    false")
	require.Contains(t, out, "barcodeScannerUsed   false")
}

func TestConfigKeepsExistingSettings(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)

	require.Equal(t, "Wrote "+cfgPath+"\n", execute(t, "--config", cfgPath, "config"))

	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)
	require.Equal(t, dbPath, cfg.Store.Path)
}

func TestConfigWritesNewFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	execute(t, "--config", path, "config")
	require.FileExists(t, path)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig().Tutorial.Enabled, cfg.Tutorial.Enabled)
}
