/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kinzaquest/internal/effect"
	"kinzaquest/internal/game"
	"kinzaquest/internal/script"
)

// boxPresenter draws speech lines as a bordered dialogue box.
type boxPresenter struct {
	w       io.Writer
	box     lipgloss.Style
	speaker lipgloss.Style
	message lipgloss.Style
	hint    lipgloss.Style
}

func newBoxPresenter(w io.Writer, ui game.UI) *boxPresenter {
	return &boxPresenter{
		w: w,
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ui.DialogueBorder)).
			Background(lipgloss.Color(ui.DialogueBg)).
			Padding(0, 1).
			Width(60),
		speaker: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ui.DialogueBorder)),
		message: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.DialogueText)),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

func (p *boxPresenter) Show(speaker, message string) {
	body := p.message.Render(message)
	if !script.Speech(speaker, message).IsNarrator() {
		body = p.speaker.Render(speaker) + "\n" + body
	} else {
		body = p.message.Italic(true).Render(message)
	}
	_, _ = fmt.Fprintln(p.w, p.box.Render(body))
	_, _ = fmt.Fprintln(p.w, p.hint.Render("⏎ continue"))
}

func (p *boxPresenter) Hide() {
	_, _ = fmt.Fprintln(p.w, p.hint.Render("· · ·"))
}

// cuePrinter plays effects by printing the cues a renderer would draw.
type cuePrinter struct {
	w       io.Writer
	planner effect.Planner
	style   lipgloss.Style
}

func newCuePrinter(w io.Writer, planner effect.Planner) *cuePrinter {
	return &cuePrinter{w: w, planner: planner, style: lipgloss.NewStyle().Foreground(lipgloss.Color("205"))}
}

func (c *cuePrinter) Dispatch(d effect.Directive) {
	for _, cue := range c.planner.Plan(d) {
		_, _ = fmt.Fprintln(c.w, c.style.Render(describeCue(cue)))
	}
}

func describeCue(c effect.Cue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✦ %s %s", c.Kind, c.Asset)
	if c.Kind == effect.CueImageBox {
		return b.String()
	}
	fmt.Fprintf(&b, " [%s %ss", c.Animation.Name, formatFloat(c.Duration))
	if c.Layout.Scale != 1 {
		fmt.Fprintf(&b, " ×%s", formatFloat(c.Layout.Scale))
	}
	if c.Layout.OffsetX != 0 || c.Layout.OffsetY != 0 {
		fmt.Fprintf(&b, " %+g,%+g", c.Layout.OffsetX, c.Layout.OffsetY)
	}
	b.WriteString("]")
	return b.String()
}
