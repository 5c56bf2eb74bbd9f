package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-smf/notes"
	"go-smf/smf"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fff"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
)

func runBrowse(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: smf browse <file>")
	}

	seq, err := smf.ReadFile(args[0])
	if err != nil {
		return err
	}

	m := newBrowseModel(seq)
	_, err = tea.NewProgram(m).Run()
	return err
}

type browseModel struct {
	seq      *smf.Sequence
	names    []string
	cursor   int
	quitting bool
}

func newBrowseModel(seq *smf.Sequence) browseModel {
	return browseModel{seq: seq, names: seq.TrackNames()}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < m.seq.TrackCount()-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	}

	return m, nil
}

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d tracks - j/k to move, q to quit", m.seq.TrackCount())))
	b.WriteString("\n\n")

	for i := 0; i < m.seq.TrackCount(); i++ {
		track, _ := m.seq.Track(i)
		label := displayText(m.names[i])
		if label == "" {
			label = "(unnamed)"
		}
		line := fmt.Sprintf("%2d  %-20s events=%-5d ticks=%d", i, label, len(track.Events), track.SumDelta())
		if i == m.cursor {
			b.WriteString(cursorStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if m.cursor > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(previewTrack(m.seq, m.cursor)))
	}

	return b.String()
}

// previewTrack renders the first few sonorities of the selected content
// track, a lightweight use of C5's reconstruction for the browser's
// detail pane.
func previewTrack(seq *smf.Sequence, index int) string {
	track, err := seq.Track(index)
	if err != nil {
		return ""
	}
	ppqn, _ := seq.Basis.PPQN()

	sonorities := notes.TrackToSonorities(track, notes.Options{PPQN: ppqn})
	if len(sonorities) == 0 {
		return "(no notes)"
	}

	var b strings.Builder
	limit := len(sonorities)
	if limit > 8 {
		limit = 8
	}
	for _, s := range sonorities[:limit] {
		switch s.Kind {
		case notes.Rest:
			b.WriteString("rest ")
		case notes.SingleNote:
			b.WriteString(fmt.Sprintf("note(%s) ", notes.FormatPitch(s.Notes[0].Key, notes.DefaultLetterPitchCodec{})))
		case notes.Chord:
			b.WriteString(fmt.Sprintf("chord(%d notes) ", len(s.Notes)))
		}
	}
	return b.String()
}
