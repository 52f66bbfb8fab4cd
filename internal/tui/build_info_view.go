// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-fin-keeper/models"
)

// RenderBuildInfo renders the output of the version command.
func RenderBuildInfo(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Application: go-fin-keeper\n")
	b.WriteString(strings.TrimRight(info.String(), "\n"))

	return renderPage("ABOUT", b.String(), "")
}
