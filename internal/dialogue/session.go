/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package dialogue sequences classified script lines: it runs effect lines through a
// Dispatcher and shows speech lines through a Presenter, one line per Advance.
//
// A Session is driven from a single input loop. Start and Advance must not be called
// concurrently.
package dialogue

import (
	"log/slog"

	"kinzaquest/internal/effect"
	applog "kinzaquest/internal/log"
	"kinzaquest/internal/script"
)

// Dispatcher plays an effect. Dispatch must return without waiting for the effect to finish.
type Dispatcher interface {
	Dispatch(d effect.Directive)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(d effect.Directive)

func (f DispatcherFunc) Dispatch(d effect.Directive) { f(d) }

// Presenter shows and hides the speech box.
type Presenter interface {
	Show(speaker, message string)
	Hide()
}

// Session is the cursor over one dialogue.
// While Active, the line at Index is always a speech line.
type Session struct {
	presenter Presenter
	effects   Dispatcher
	onDone    func()
	log       *slog.Logger

	lines      []script.Line
	index      int
	active     bool
	onComplete func()
}

// New creates an idle session. onDone runs when a dialogue started without its
// own completion callback ends; it may be nil.
func New(d Dispatcher, p Presenter, onDone func()) *Session {
	return &Session{
		effects:   d,
		presenter: p,
		onDone:    onDone,
		log:       applog.WithComponent("dialogue"),
	}
}

// Start begins lines, discarding any dialogue in progress.
// Leading effect lines are dispatched in order. If no speech line exists the
// dialogue completes at once. Otherwise the effect lines directly before the first
// speech line are dispatched again so they play alongside it, then it is shown.
func (s *Session) Start(lines []script.Line, onComplete func()) {
	s.lines = append([]script.Line(nil), lines...)
	s.onComplete = onComplete
	s.active = true
	s.index = 0
	s.log.Debug("start", slog.Int("lines", len(s.lines)))

	s.skipEffects()
	if s.index >= len(s.lines) {
		s.active = false
		s.complete()
		return
	}
	s.present()
}

// Advance moves to the next speech line, dispatching effect lines passed on the way.
// Past the last line the box is hidden and the completion callback runs.
// It is a no-op when the session is not active.
func (s *Session) Advance() {
	if !s.active {
		return
	}
	s.index++
	s.skipEffects()
	if s.index >= len(s.lines) {
		s.active = false
		s.presenter.Hide()
		s.complete()
		return
	}
	s.present()
}

// Active reports whether a speech line is on screen.
func (s *Session) Active() bool { return s.active }

// Index is the position of the current line.
func (s *Session) Index() int { return s.index }

// Current returns the speech line on screen.
func (s *Session) Current() (script.Line, bool) {
	if !s.active {
		return script.Line{}, false
	}
	return s.lines[s.index], true
}

func (s *Session) skipEffects() {
	for s.index < len(s.lines) && s.lines[s.index].IsEffect() {
		s.dispatch(s.index)
		s.index++
	}
}

// present replays the run of effect lines right before the current line, nearest
// first, and shows the current line.
func (s *Session) present() {
	for i := s.index - 1; i >= 0 && s.lines[i].IsEffect(); i-- {
		s.dispatch(i)
	}
	l := s.lines[s.index]
	s.log.Debug("show", slog.Int("index", s.index), slog.String("speaker", l.Speaker))
	s.presenter.Show(l.Speaker, l.Message)
}

func (s *Session) dispatch(i int) {
	if s.effects == nil {
		return
	}
	s.effects.Dispatch(*s.lines[i].Effect)
}

// complete runs the dialogue's own callback, else the session default. The
// callback is cleared first so it may start another dialogue.
func (s *Session) complete() {
	cb := s.onComplete
	s.onComplete = nil
	s.log.Debug("complete", slog.Bool("custom", cb != nil))
	if cb == nil {
		cb = s.onDone
	}
	if cb != nil {
		cb()
	}
}
