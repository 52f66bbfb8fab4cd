// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	recoveryColumns = 4
	statusTTL       = 2 * time.Second
)

// RenderRecoveryKey lays the mnemonic out as a numbered word grid inside a
// box. Words are numbered column by column.
func RenderRecoveryKey(mnemonic string) string {
	words := strings.Fields(mnemonic)
	rows := (len(words) + recoveryColumns - 1) / recoveryColumns

	var grid strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < recoveryColumns; c++ {
			i := c*rows + r
			if i >= len(words) {
				continue
			}
			grid.WriteString(wordIndexStyle.Render(fmt.Sprintf("%2d.", i+1)))
			fmt.Fprintf(&grid, " %-10s", words[i])
		}
		if r < rows-1 {
			grid.WriteString("\n")
		}
	}

	content := titleStyle.Render("RECOVERY KEY") + "\n\n" +
		grid.String() + "\n\n" +
		"Write these words down and keep them offline.\n" +
		"They are shown only once and are the only way back in\n" +
		"if you forget your password."
	return recoveryBoxStyle.Render(content)
}

// recoveryModel shows the recovery key until the user confirms.
type recoveryModel struct {
	mnemonic string
	copyFn   func(string) error
	status   string
	errMsg   string
}

func newRecoveryModel(mnemonic string) recoveryModel {
	return recoveryModel{mnemonic: mnemonic, copyFn: clipboard.WriteAll}
}

func (m recoveryModel) Init() tea.Cmd {
	return nil
}

func (m recoveryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Copy failed: %v", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.status = "Copied to clipboard"
		return m, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.copy):
			return m, m.cmdCopy()
		case key.Matches(msg, keys.enter), key.Matches(msg, keys.quit):
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m recoveryModel) cmdCopy() tea.Cmd {
	mnemonic, copyFn := m.mnemonic, m.copyFn
	return func() tea.Msg {
		return copiedMsg{err: copyFn(mnemonic)}
	}
}

func (m recoveryModel) View() string {
	var b strings.Builder
	b.WriteString(RenderRecoveryKey(m.mnemonic))
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("c: copy to clipboard  enter: I have saved it"))
	return appStyle.Render(b.String())
}
