package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-fin-keeper/models"
)

// progressModel renders the reports of a running key rotation. It quits
// once the job reports completion.
type progressModel struct {
	title   string
	spinner spinner.Model
	bar     progress.Model
	cancel  context.CancelFunc

	last     models.ReEncryptionProgress
	stopping bool
	done     bool
	err      error
}

func newProgressModel(title string, cancel context.CancelFunc) progressModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return progressModel{
		title:   title,
		spinner: s,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		cancel:  cancel,
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.last = models.ReEncryptionProgress(msg)
		return m, nil
	case jobDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		// the job stops at its next checkpoint and reports back
		if key.Matches(msg, keys.interrupt) && !m.stopping {
			m.stopping = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	switch {
	case m.done && m.err == nil:
		b.WriteString(statusStyle.Render(fmt.Sprintf("Done: %d record(s)", m.last.Total)))
	case m.done:
		b.WriteString(errorStyle.Render("Stopped while " + phaseLabel(m.last.Phase)))
	default:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(phaseLabel(m.last.Phase))
		if m.last.EntityType != "" {
			b.WriteString(" (")
			b.WriteString(m.last.EntityType.String())
			b.WriteString(")")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(fraction(m.last)))
	fmt.Fprintf(&b, "  %d/%d\n\n", m.last.Current, m.last.Total)

	if m.stopping && !m.done {
		b.WriteString(helpStyle.Render("stopping; run the command again to resume"))
	} else if !m.done {
		b.WriteString(helpStyle.Render("ctrl+c: stop (the next run resumes)"))
	}

	return appStyle.Render(b.String())
}

func fraction(p models.ReEncryptionProgress) float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Total)
	if f > 1 {
		return 1
	}
	return f
}

func phaseLabel(phase models.ReEncryptionPhase) string {
	switch phase {
	case models.PhaseDerivingKeys:
		return "deriving keys"
	case models.PhaseFetchingData:
		return "fetching records"
	case models.PhaseDecrypting:
		return "decrypting"
	case models.PhaseReEncrypting:
		return "encrypting under the new key"
	case models.PhaseUploading:
		return "uploading"
	case models.PhaseComplete:
		return "complete"
	case models.PhaseError:
		return "failed"
	default:
		return "starting"
	}
}
