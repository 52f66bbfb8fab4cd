package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// Job is a long running operation that reports key rotation progress.
type Job func(ctx context.Context, progress service.ProgressFunc) error

// TUI runs the interactive views of the client. A nil input means stdin is
// not a terminal: views are printed once and never wait for keys.
type TUI struct {
	in     io.Reader
	out    io.Writer
	logger *logger.Logger
}

func New(in io.Reader, out io.Writer, log *logger.Logger) *TUI {
	return &TUI{in: in, out: out, logger: log}
}

// Interactive reports whether the views can read keys.
func (t *TUI) Interactive() bool {
	return t.in != nil
}

// RunJob runs job while rendering its progress. It returns the job's error.
func (t *TUI) RunJob(ctx context.Context, title string, job Job) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !t.Interactive() {
		return t.runPlain(ctx, title, job)
	}

	p := tea.NewProgram(newProgressModel(title, cancel), tea.WithInput(t.in), tea.WithOutput(t.out))

	var jobErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		jobErr = job(ctx, func(pr models.ReEncryptionProgress) {
			p.Send(progressMsg(pr))
		})
		p.Send(jobDoneMsg{err: jobErr})
	}()

	if _, err := p.Run(); err != nil {
		t.logger.Err(err).Str("func", "TUI.RunJob").Msg("progress view failed")
		cancel()
		<-done
		if jobErr != nil {
			return jobErr
		}
		return fmt.Errorf("progress view: %w", err)
	}
	<-done
	return jobErr
}

// runPlain prints one line per phase change.
func (t *TUI) runPlain(ctx context.Context, title string, job Job) error {
	fmt.Fprintln(t.out, title)
	var last models.ReEncryptionPhase
	return job(ctx, func(pr models.ReEncryptionProgress) {
		if pr.Phase == last {
			return
		}
		last = pr.Phase
		fmt.Fprintf(t.out, "  %s %d/%d\n", phaseLabel(pr.Phase), pr.Current, pr.Total)
	})
}

// ShowRecoveryKey displays the recovery key once and waits for the user to
// confirm they saved it.
func (t *TUI) ShowRecoveryKey(mnemonic string) error {
	if !t.Interactive() {
		_, err := fmt.Fprintln(t.out, RenderRecoveryKey(mnemonic))
		return err
	}
	if _, err := tea.NewProgram(newRecoveryModel(mnemonic), tea.WithInput(t.in), tea.WithOutput(t.out)).Run(); err != nil {
		return fmt.Errorf("recovery key view: %w", err)
	}
	return nil
}

// Print writes a rendered view.
func (t *TUI) Print(view string) {
	fmt.Fprintln(t.out, view)
}
