package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tikzdoc/pkg/scene"
)

func testFiles(n int) []SceneFile {
	files := make([]SceneFile, n)
	for i := range files {
		files[i] = SceneFile{
			Path:     filepath.Join("scenes", string(rune('a'+i))+".toml"),
			Format:   scene.FormatTOML,
			Size:     int64(100 * i),
			Modified: time.Now(),
		}
	}
	return files
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestSceneListNavigation(t *testing.T) {
	m := press(NewSceneListModel(testFiles(3)), "down", "j", "j", "up").(SceneListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	m = press(m, "k", "k", "k").(SceneListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 after moving past the top", m.Cursor)
	}
}

func TestSceneListSelect(t *testing.T) {
	model, cmd := press(NewSceneListModel(testFiles(3)), "down").Update(tea.KeyMsg{Type: tea.KeyEnter})
	m := model.(SceneListModel)
	if m.Selected == nil || m.Selected.Path != filepath.Join("scenes", "b.toml") {
		t.Fatalf("Selected = %+v", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}

	m = press(NewSceneListModel(testFiles(3)), "q").(SceneListModel)
	if m.Selected != nil {
		t.Error("q selected a scene")
	}
}

func TestSceneListScrolls(t *testing.T) {
	m := NewSceneListModel(testFiles(10))
	m.Height = 3
	m = press(m, "down", "down", "down", "down").(SceneListModel)
	if m.Cursor != 4 || m.Offset != 2 {
		t.Errorf("Cursor, Offset = %d, %d, want 4, 2", m.Cursor, m.Offset)
	}

	view := m.View()
	if strings.Contains(view, "a.toml") || !strings.Contains(view, "e.toml") {
		t.Errorf("view shows the wrong window:\n%s", view)
	}
	if !strings.Contains(view, "[5/10]") {
		t.Errorf("view misses the position marker:\n%s", view)
	}
}

func TestListScenes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.toml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := listScenes(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("listScenes() = %d files, want 2", len(files))
	}
	if filepath.Base(files[0].Path) != "a.toml" || files[1].Format != scene.FormatJSON || files[1].Size != 2 {
		t.Errorf("listScenes() = %+v", files)
	}
}

func TestFormatHelpers(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	times := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
		{30 * 24 * time.Hour, "May 2, 2025"},
	}
	for _, tt := range times {
		if got := formatRelativeTime(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("formatRelativeTime(-%s) = %q, want %q", tt.ago, got, tt.want)
		}
	}

	sizes := map[int64]string{12: "12 B", 2048: "2.0 KiB", 3 << 20: "3.0 MiB"}
	for n, want := range sizes {
		if got := formatSize(n); got != want {
			t.Errorf("formatSize(%d) = %q, want %q", n, got, want)
		}
	}
}
