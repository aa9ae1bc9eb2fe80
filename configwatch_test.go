package raycursor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigWatcher(t *testing.T) {

	path := filepath.Join(t.TempDir(), "raycursor.toml")
	require.NoError(t, os.WriteFile(path, []byte("mode = \"semi-auto\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	rc := newTestRayCursor(t, cfg, &testInput{})
	rc.Tick(0)

	watcher, err := WatchConfig(path, nil)
	require.NoError(t, err)
	defer watcher.Close()

	assert.True(t, filepath.IsAbs(watcher.Path()))

	reloaded, err := watcher.Update(rc, 0.1)
	require.NoError(t, err)
	assert.False(t, reloaded, "nothing changed yet")

	// Other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.toml"), []byte("junk"), 0o644))

	require.NoError(t, os.WriteFile(path, []byte("mode = \"manual\"\n[cursor]\ninitial_distance = 4.0\n"), 0o644))

	require.Eventually(t, func() bool {
		_, err := watcher.Update(rc, 0.2)
		return err == nil && rc.Config().Mode == ModeManual && rc.Config().Cursor.InitialDistance == 4
	}, 5*time.Second, 10*time.Millisecond)

	assert.True(t, rc.Running())
	assert.Equal(t, ModeManual, rc.Mode())
	assert.Equal(t, 4.0, rc.Cursor().Distance())

	// Broken files are reported, and leave the RayCursor running
	require.NoError(t, os.WriteFile(path, []byte("mode = \"sideways\"\n"), 0o644))

	require.Eventually(t, func() bool {
		_, err := watcher.Update(rc, 0.3)
		return err != nil
	}, 5*time.Second, 10*time.Millisecond)

	assert.True(t, rc.Running())

}

func TestWatchConfigMissingDirectory(t *testing.T) {
	_, err := WatchConfig(filepath.Join(t.TempDir(), "missing", "raycursor.toml"), nil)
	assert.Error(t, err)
}
