package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tikzdoc/pkg/scene"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// SceneListModel - Interactive scene file selection
// =============================================================================

// SceneFile is one entry of the scene picker.
type SceneFile struct {
	Path     string
	Format   scene.Format
	Size     int64
	Modified time.Time
}

// SceneListModel is the bubbletea model for interactive scene selection.
type SceneListModel struct {
	Files    []SceneFile
	Cursor   int
	Selected *SceneFile
	Height   int
	Offset   int
}

// NewSceneListModel creates a picker over files.
func NewSceneListModel(files []SceneFile) SceneListModel {
	return SceneListModel{Files: files, Height: 15}
}

func (m SceneListModel) Init() tea.Cmd {
	return nil
}

func (m SceneListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Files) == 0 {
				return m, tea.Quit
			}
			f := m.Files[m.Cursor]
			m.Selected = &f
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m SceneListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Scene"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Files))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Files[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			filepath.Base(f.Path),
			string(f.Format),
			formatSize(f.Size),
			formatRelativeTime(f.Modified, time.Now()),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Scene", "Format", "Size", "Modified").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Files))))

	return b.String()
}

// =============================================================================
// Picker
// =============================================================================

// listScenes collects the scene files directly inside dir.
func listScenes(dir string) ([]SceneFile, error) {
	paths, err := scene.Find(dir)
	if err != nil {
		return nil, err
	}
	files := make([]SceneFile, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		format, _ := scene.FormatOf(p)
		files = append(files, SceneFile{Path: p, Format: format, Size: info.Size(), Modified: info.ModTime()})
	}
	return files, nil
}

// pickScene lets the user choose a scene file from dir. It returns "" when
// the user quits without choosing.
func pickScene(dir string) (string, error) {
	files, err := listScenes(dir)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no scene files (.toml, .json) in %s", dir)
	}

	final, err := tea.NewProgram(NewSceneListModel(files)).Run()
	if err != nil {
		return "", fmt.Errorf("scene picker: %w", err)
	}
	if m, ok := final.(SceneListModel); ok && m.Selected != nil {
		return m.Selected.Path, nil
	}
	return "", nil
}

// =============================================================================
// Helpers
// =============================================================================

func formatSize(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	}
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
