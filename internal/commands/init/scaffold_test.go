package initcmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/podium/internal/core/deck"
	"github.com/hay-kot/podium/internal/deckfile"
)

func TestScaffold_LoadsBack(t *testing.T) {
	tests := []struct {
		name   string
		opts   DeckOptions
		files  int
		slides int
	}{
		{
			name:   "inline",
			opts:   DeckOptions{Title: "Go Tour", Sections: 2, Notes: true},
			files:  1,
			slides: 2 + 2*2 + 1,
		},
		{
			name:   "markdown",
			opts:   DeckOptions{Title: "Go Tour", Sections: 3, Markdown: true, Notes: true},
			files:  4,
			slides: 2 + 3 + 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			files, err := Scaffold(tt.opts)
			require.NoError(t, err)
			require.Len(t, files, tt.files)
			assert.Equal(t, DeckFileName, files[0].Path)

			_, err = WriteFiles(dir, files)
			require.NoError(t, err)

			loaded, err := deckfile.Load(filepath.Join(dir, DeckFileName))
			require.NoError(t, err)

			assert.Equal(t, "Go Tour", loaded.Title)
			assert.Equal(t, tt.slides, deck.Count(loaded.Slides))
			assert.Equal(t, "title", loaded.Slides[0].ID)
			assert.Equal(t, "agenda", loaded.Slides[1].ID)
		})
	}
}

func TestScaffold_MarkdownNotes(t *testing.T) {
	dir := t.TempDir()

	files, err := Scaffold(DeckOptions{Title: "T", Sections: 1, Markdown: true, Notes: true})
	require.NoError(t, err)
	_, err = WriteFiles(dir, files)
	require.NoError(t, err)

	loaded, err := deckfile.Load(filepath.Join(dir, DeckFileName))
	require.NoError(t, err)

	section := loaded.Slides[2]
	assert.Equal(t, "01-section-1", section.ID)
	assert.Equal(t, "Section 1", section.Title)
	assert.True(t, section.Toc)
	assert.Equal(t, "Expand on the points.", section.Notes)
}

func TestScaffold_WithoutNotes(t *testing.T) {
	files, err := Scaffold(DeckOptions{Title: "T", Sections: 1, Markdown: true})
	require.NoError(t, err)

	for _, f := range files {
		assert.NotContains(t, string(f.Content), deckfile.NotesMarker, f.Path)
		assert.NotContains(t, string(f.Content), "notes:", f.Path)
	}
}

func TestScaffold_DefaultTitle(t *testing.T) {
	files, err := Scaffold(DeckOptions{Sections: 1})
	require.NoError(t, err)
	assert.Contains(t, string(files[0].Content), "title: Untitled Talk")
}

func TestScaffold_RejectsZeroSections(t *testing.T) {
	_, err := Scaffold(DeckOptions{Title: "T"})
	require.Error(t, err)
}

func TestBackupFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DeckFileName)

	backup, err := BackupFile(path, []byte("title: new"))
	require.NoError(t, err)
	assert.Empty(t, backup, "nothing to back up")

	require.NoError(t, os.WriteFile(path, []byte("title: old"), 0o600))
	assert.True(t, FileExists(path))

	backup, err = BackupFile(path, []byte("title: new"))
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "title: old", string(data))

	info, err := os.Stat(backup)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestBackupFile_KeepsEarlierBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DeckFileName)

	var backups []string
	for _, content := range []string{"title: first", "title: second", "title: third"} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		backup, err := BackupFile(path, []byte("title: scaffold"))
		require.NoError(t, err)
		backups = append(backups, backup)
	}

	assert.Equal(t, []string{path + ".bak", path + ".bak.1", path + ".bak.2"}, backups)

	for i, want := range []string{"title: first", "title: second", "title: third"} {
		data, err := os.ReadFile(backups[i])
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

func TestBackupFile_SkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DeckFileName)
	require.NoError(t, os.WriteFile(path, []byte("title: same"), 0o644))

	backup, err := BackupFile(path, []byte("title: same"))
	require.NoError(t, err)
	assert.Empty(t, backup)
	assert.False(t, FileExists(path+".bak"))
}

func TestParseSections(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "3", want: 3},
		{in: " 12 ", want: 12},
		{in: "0", wantErr: true},
		{in: "51", wantErr: true},
		{in: "three", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSections(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
