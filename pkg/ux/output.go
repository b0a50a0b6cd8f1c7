// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ux renders cauldron's console output.
//
// Everything prints through the writers set with SetOutput (stdout and
// stderr by default) and respects the active PersonalityLevel. In
// machine mode output is plain, one fact per line, with no ANSI codes.
package ux

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette and Styles
// =============================================================================

var (
	ColorBrew     = lipgloss.Color("#9B59B6") // potion purple, titles
	ColorBrewDeep = lipgloss.Color("#6C3483") // borders
	ColorFlame    = lipgloss.Color("#E67E22") // catalyst highlights
	ColorSuccess  = lipgloss.Color("#2ECC71")
	ColorWarning  = lipgloss.Color("#F4D03F")
	ColorError    = lipgloss.Color("#E74C3C")
	ColorMuted    = lipgloss.Color("#5D6D7E")
)

// Styles holds every lipgloss style used by this package.
var Styles = struct {
	Title     lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
	Box       lipgloss.Style
	ErrorBox  lipgloss.Style
	Bar       lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorBrew),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorFlame).Bold(true),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBrewDeep).
		Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1),
	Bar: lipgloss.NewStyle().Foreground(ColorBrew),
}

// Icon is a single-glyph status marker.
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
	IconFlask   Icon = "⚗"
)

// Render colors the icon according to its meaning.
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	case IconFlask, IconArrow:
		return Styles.Highlight.Render(string(i))
	default:
		return string(i)
	}
}

// =============================================================================
// Writers
// =============================================================================

var (
	stdout   io.Writer = os.Stdout
	stderr   io.Writer = os.Stderr
	writerMu sync.RWMutex
)

// SetOutput redirects console output. Nil leaves a writer unchanged.
func SetOutput(out, errOut io.Writer) {
	writerMu.Lock()
	defer writerMu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func outWriter() io.Writer {
	writerMu.RLock()
	defer writerMu.RUnlock()
	return stdout
}

func errWriter() io.Writer {
	writerMu.RLock()
	defer writerMu.RUnlock()
	return stderr
}

// =============================================================================
// Output Functions
// =============================================================================

// Title prints a heading. Nothing is printed in machine mode.
func Title(text string) {
	if IsMachine() {
		return
	}
	fmt.Fprintln(outWriter(), Styles.Title.Render(text))
}

// Success prints a success line.
func Success(text string) {
	switch GetPersonality() {
	case PersonalityMachine:
		fmt.Fprintf(outWriter(), "OK: %s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(outWriter(), "%s %s\n", IconSuccess, text)
	default:
		fmt.Fprintf(outWriter(), "%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
	}
}

// Warning prints a warning line. Machine mode writes it to stderr.
func Warning(text string) {
	switch GetPersonality() {
	case PersonalityMachine:
		fmt.Fprintf(errWriter(), "WARN: %s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(outWriter(), "%s %s\n", IconWarning, text)
	default:
		fmt.Fprintf(outWriter(), "%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
	}
}

// Error prints an error line to stderr.
func Error(text string) {
	switch GetPersonality() {
	case PersonalityMachine:
		fmt.Fprintf(errWriter(), "ERROR: %s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(errWriter(), "%s %s\n", IconError, text)
	default:
		fmt.Fprintf(errWriter(), "%s %s\n", IconError.Render(), Styles.Error.Render(text))
	}
}

// Info prints a plain informational line.
func Info(text string) {
	if IsMachine() {
		fmt.Fprintln(outWriter(), text)
		return
	}
	fmt.Fprintf(outWriter(), "%s %s\n", Styles.Muted.Render("│"), text)
}

// Muted prints de-emphasised text. Nothing is printed in machine mode.
func Muted(text string) {
	if IsMachine() {
		return
	}
	fmt.Fprintln(outWriter(), Styles.Muted.Render(text))
}

// Box prints content in a rounded border under a title. Machine mode
// prints "title: line" for each content line.
func Box(title, content string) {
	if IsMachine() {
		for _, line := range strings.Split(content, "\n") {
			fmt.Fprintf(outWriter(), "%s: %s\n", title, line)
		}
		return
	}
	titleLine := Styles.Title.Render(title)
	fmt.Fprintln(outWriter(), Styles.Box.Width(60).Render(titleLine+"\n"+content))
}

// KeyValues prints aligned "key  value" pairs. Machine mode prints
// key=value, one per line.
func KeyValues(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p[0]))
	}
	for _, p := range pairs {
		if IsMachine() {
			fmt.Fprintf(outWriter(), "%s=%s\n", p[0], p[1])
			continue
		}
		key := Styles.Muted.Render(fmt.Sprintf("%-*s", width, p[0]))
		fmt.Fprintf(outWriter(), "  %s  %s\n", key, p[1])
	}
}

// Histogram prints one bar per bucket, scaled so the largest count
// fills width cells. labels and counts must have the same length.
// Machine mode prints "label count" lines.
func Histogram(labels []string, counts []int, width int) {
	peak := 0
	labelWidth := 0
	for i, c := range counts {
		peak = max(peak, c)
		labelWidth = max(labelWidth, len(labels[i]))
	}
	for i, c := range counts {
		if IsMachine() {
			fmt.Fprintf(outWriter(), "%s %d\n", labels[i], c)
			continue
		}
		cells := 0
		if peak > 0 {
			cells = c * width / peak
		}
		if c > 0 && cells == 0 {
			cells = 1
		}
		fmt.Fprintf(outWriter(), "  %*s %s %d\n",
			labelWidth, labels[i],
			Styles.Bar.Render(strings.Repeat("█", cells)),
			c,
		)
	}
}
