package tui

import "github.com/MKhiriev/go-fin-keeper/models"

type progressMsg models.ReEncryptionProgress

type jobDoneMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
