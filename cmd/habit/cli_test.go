package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"habit/internal/config"
	"habit/internal/habit"
	"habit/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command tree against an isolated storage file.
func runCLI(t *testing.T, storage string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HABIT_LOG_LEVEL", "")
	t.Setenv("HABIT_STORAGE", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(filepath.Dir(storage), "habit.yaml"),
		"--storage", storage,
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func storagePathFor(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "habits.json")
}

func loadStore(t *testing.T, path string) *store.HabitStore {
	t.Helper()
	s, err := store.Load(path)
	require.NoError(t, err)
	return s
}

func TestAddAndList(t *testing.T) {
	path := storagePathFor(t)

	out, err := runCLI(t, path, "add", "Read 30 minutes", "--frequency", "7", "--description", "fiction counts")
	require.NoError(t, err)
	assert.Contains(t, out, "Added habit: 'Read 30 minutes'")

	_, err = runCLI(t, path, "add", "Stretch")
	require.NoError(t, err)

	s := loadStore(t, path)
	require.Equal(t, 2, s.Len())

	out, err = runCLI(t, path, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Habits (2)")
	assert.Contains(t, out, "Read 30 minutes")
	assert.Contains(t, out, "fiction counts")
	assert.Contains(t, out, "7 per week")
	assert.Contains(t, out, "Stretch")
}

func TestAdd_InvalidInputNotPersisted(t *testing.T) {
	path := storagePathFor(t)

	_, err := runCLI(t, path, "add", "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, habit.ErrInvalidName)

	_, err = runCLI(t, path, "add", "Gym", "--frequency", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, habit.ErrInvalidFrequency)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written on invalid input")
}

func TestList_ActiveFilter(t *testing.T) {
	path := storagePathFor(t)
	_, err := runCLI(t, path, "add", "Gym")
	require.NoError(t, err)
	_, err = runCLI(t, path, "add", "Swim")
	require.NoError(t, err)
	_, err = runCLI(t, path, "edit", "Swim", "--active=false")
	require.NoError(t, err)

	out, err := runCLI(t, path, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Gym")
	assert.NotContains(t, out, "Swim")

	out, err = runCLI(t, path, "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Swim")
	assert.Contains(t, out, "(inactive)")
}

func TestList_Empty(t *testing.T) {
	out, err := runCLI(t, storagePathFor(t), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No habits to display")
}

func TestComplete(t *testing.T) {
	path := storagePathFor(t)
	_, err := runCLI(t, path, "add", "Meditate")
	require.NoError(t, err)

	out, err := runCLI(t, path, "complete", "Meditate", "--date", "2026-10-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Marked complete: 'Meditate' (2026-10-10)")

	_, err = runCLI(t, path, "complete", "Meditate", "--date", "2026-10-10")
	require.Error(t, err)
	assert.ErrorIs(t, err, habit.ErrAlreadyCompleted)

	_, err = runCLI(t, path, "complete", "Meditate")
	require.NoError(t, err)

	h, err := loadStore(t, path).Find("Meditate")
	require.NoError(t, err)
	assert.Len(t, h.Completions(), 2)
	assert.True(t, h.HasCompletion(habit.Today()))

	_, err = runCLI(t, path, "complete", "Meditate", "--date", "10/10/2026")
	assert.ErrorIs(t, err, habit.ErrInvalidDate)

	_, err = runCLI(t, path, "complete", "Nope")
	assert.ErrorIs(t, err, habit.ErrNotFound)
}

func TestComplete_DuplicateNamesPickEarliest(t *testing.T) {
	path := storagePathFor(t)
	_, err := runCLI(t, path, "add", "Gym")
	require.NoError(t, err)
	_, err = runCLI(t, path, "add", "Gym")
	require.NoError(t, err)

	_, err = runCLI(t, path, "complete", "Gym", "--date", "2026-10-01")
	require.NoError(t, err)

	habits := loadStore(t, path).List(false)
	require.Len(t, habits, 2)
	assert.Len(t, habits[0].Completions(), 1)
	assert.Empty(t, habits[1].Completions())
}

func TestRemove(t *testing.T) {
	path := storagePathFor(t)
	_, err := runCLI(t, path, "add", "Read")
	require.NoError(t, err)
	id := loadStore(t, path).List(false)[0].ID()

	_, err = runCLI(t, path, "remove", "Missing")
	assert.ErrorIs(t, err, habit.ErrNotFound)
	assert.Equal(t, 1, loadStore(t, path).Len())

	out, err := runCLI(t, path, "remove", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed habit: 'Read'")
	assert.Zero(t, loadStore(t, path).Len())
}

func TestEdit(t *testing.T) {
	path := storagePathFor(t)
	_, err := runCLI(t, path, "add", "Gym", "--description", "legs", "--frequency", "3")
	require.NoError(t, err)

	t.Run("invalid values change nothing", func(t *testing.T) {
		_, err := runCLI(t, path, "edit", "Gym", "--name", "Gym session", "--frequency", "0")
		assert.ErrorIs(t, err, habit.ErrInvalidFrequency)
		_, err = runCLI(t, path, "edit", "Gym", "--frequency", "often")
		assert.ErrorIs(t, err, habit.ErrInvalidFrequency)
		_, err = runCLI(t, path, "edit", "Gym", "--name", " ", "--frequency", "5")
		assert.ErrorIs(t, err, habit.ErrInvalidName)

		h, err := loadStore(t, path).Find("Gym")
		require.NoError(t, err)
		freq, _ := h.TargetFrequency()
		assert.Equal(t, 3, freq)
	})

	t.Run("no flags", func(t *testing.T) {
		_, err := runCLI(t, path, "edit", "Gym")
		assert.Error(t, err)
	})

	t.Run("apply and clear", func(t *testing.T) {
		out, err := runCLI(t, path, "edit", "Gym", "--name", "Gym session", "--description", "null", "--frequency", "null")
		require.NoError(t, err)
		assert.Contains(t, out, "Updated habit: 'Gym session'")

		h, err := loadStore(t, path).Find("Gym session")
		require.NoError(t, err)
		_, ok := h.Description()
		assert.False(t, ok)
		_, ok = h.TargetFrequency()
		assert.False(t, ok)
		assert.True(t, h.IsActive())
	})
}

func TestShow(t *testing.T) {
	path := storagePathFor(t)
	_, err := runCLI(t, path, "add", "Read", "--frequency", "7")
	require.NoError(t, err)

	out, err := runCLI(t, path, "show", "Read")
	require.NoError(t, err)
	assert.Contains(t, out, "Last 7 days")
	assert.Contains(t, out, "none")

	today := habit.Today()
	_, err = runCLI(t, path, "complete", "Read", "--date", today.String())
	require.NoError(t, err)
	out, err = runCLI(t, path, "show", "Read")
	require.NoError(t, err)
	assert.Contains(t, out, today.String())
	assert.Contains(t, out, "14% this week")
}

func TestCorruptStorageIsReported(t *testing.T) {
	path := storagePathFor(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := runCLI(t, path, "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, habit.ErrSerialization)

	_, err = runCLI(t, path, "add", "Read")
	assert.ErrorIs(t, err, habit.ErrSerialization)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestConfigFileStoragePath(t *testing.T) {
	dir := t.TempDir()
	storage := filepath.Join(dir, "data", "mine.json")
	cfgPath := filepath.Join(dir, "habit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("storage:\n  path: "+storage+"\n"), 0o644))
	t.Setenv("HABIT_STORAGE", "")
	t.Setenv("HABIT_LOG_LEVEL", "")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "add", "Walk"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 1, loadStore(t, storage).Len())
}

func TestInit(t *testing.T) {
	path := storagePathFor(t)
	cfgPath := filepath.Join(filepath.Dir(path), "habit.yaml")

	out, err := runCLI(t, path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote config: "+cfgPath)

	loaded, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, path, loaded.Storage.Path)
	assert.Equal(t, "warn", loaded.Logging.Level)

	_, err = runCLI(t, path, "init")
	assert.ErrorIs(t, err, config.ErrExists)

	other := filepath.Join(filepath.Dir(path), "other.json")
	_, err = runCLI(t, other, "init", "--force")
	require.NoError(t, err)
	loaded, err = config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, other, loaded.Storage.Path)
}
