package settings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

func TestDefaults(t *testing.T) {
	s := NewStore(nil)

	a := s.Appearance()
	assert.Equal(t, "a", a.Wallpaper)
	assert.Equal(t, "wallpaper-a", a.WallpaperClass)
	assert.Equal(t, "sunset", a.AccentKey)
	assert.Equal(t, Accent{Name: "Sunset", Primary: "#f98b00", Secondary: "#ff6400"}, a.Accent)
	assert.False(t, a.Clock24)
	assert.Equal(t, []string{"appearance", "background", "system"}, s.Categories())
}

func TestSetValidation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   interface{}
		wantErr string
	}{
		{name: "wallpaper", key: KeyWallpaper, value: "c"},
		{name: "bad wallpaper", key: KeyWallpaper, value: "z", wantErr: "unknown wallpaper: z"},
		{name: "accent", key: KeyAccent, value: "violet"},
		{name: "bad accent", key: KeyAccent, value: "mauve", wantErr: "unknown accent: mauve"},
		{name: "clock", key: KeyClock24, value: true},
		{name: "clock not bool", key: KeyClock24, value: "yes", wantErr: "clock.24hr must be a boolean"},
		{name: "unknown key", key: "desktop.font", value: "x", wantErr: "setting not found: desktop.font"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(nil)
			err := s.Set(tt.key, tt.value)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			setting, err := s.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, setting.Value)
		})
	}
}

func TestFormatClock(t *testing.T) {
	s := NewStore(nil)
	at := time.Date(2024, 4, 1, 21, 5, 0, 0, time.UTC)

	assert.Equal(t, "Mon, Apr 1, 9:05 PM", s.FormatClock(at))
	require.NoError(t, s.Set(KeyClock24, true))
	assert.Equal(t, "Mon, Apr 1, 21:05", s.FormatClock(at))
}

func TestResetRestoresDefault(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.Set(KeyAccent, "ocean"))

	setting, err := s.Reset(KeyAccent)
	require.NoError(t, err)
	assert.Equal(t, "sunset", setting.Value)

	_, err = s.Reset("nope")
	assert.Error(t, err)
}

func TestExportImport(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.Set(KeyWallpaper, "d"))

	document, err := s.Export()
	require.NoError(t, err)
	assert.Contains(t, document, `"desktop.wallpaper": "d"`)

	other := NewStore(nil)
	count, rejected, err := other.ImportJSON(document)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Empty(t, rejected)
	assert.Equal(t, "d", other.Appearance().Wallpaper)

	count, rejected, err = other.Import(map[string]interface{}{KeyAccent: "aurora", "bogus": 1})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"setting not found: bogus"}, rejected)

	_, _, err = other.ImportJSON("{not json")
	assert.Error(t, err)
}

func TestPersistsToFilesystem(t *testing.T) {
	fs := vfs.New(vfs.DefaultSeed(), nil)
	s := NewStore(nil).WithFilesystem(fs, DefaultPath)
	require.NoError(t, s.Set(KeyAccent, "ocean"))

	content, err := fs.ReadFile(DefaultPath, "/")
	require.NoError(t, err)
	assert.Contains(t, content, `"desktop.accent": "ocean"`)

	reloaded := NewStore(nil).WithFilesystem(fs, DefaultPath)
	assert.Equal(t, "ocean", reloaded.Appearance().AccentKey)
}

func TestCorruptFileKeepsDefaults(t *testing.T) {
	fs := vfs.New(vfs.DefaultSeed(), nil)
	_, err := fs.WriteFile(DefaultPath, "/", "{broken")
	require.NoError(t, err)

	s := NewStore(nil).WithFilesystem(fs, DefaultPath)
	assert.Equal(t, "sunset", s.Appearance().AccentKey)
}
