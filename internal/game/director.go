/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package game

import (
	"errors"
	"fmt"
	"log/slog"

	"kinzaquest/internal/dialogue"
	applog "kinzaquest/internal/log"
)

// ErrUnknownMinigame is returned when an event names a minigame nobody registered.
var ErrUnknownMinigame = errors.New("minigame not found")

// Launcher starts the minigame an event unlocks.
type Launcher interface {
	Launch(id string) error
}

// Minigames is a Launcher over a fixed set of start functions.
type Minigames map[string]func() error

func (m Minigames) Launch(id string) error {
	start, ok := m[id]
	if !ok || start == nil {
		return fmt.Errorf("%w: %q", ErrUnknownMinigame, id)
	}
	return start()
}

// Hooks are the optional side effects of event progression.
type Hooks struct {
	Launcher Launcher
	// Spawn is called with the event that becomes current when it has particles.
	Spawn func(Event)
	// OnEventStart fires when an event dialogue begins.
	OnEventStart func(index int, ev Event)
	// OnEventComplete fires after an event dialogue ends; next is the new current index.
	OnEventComplete func(completed, next int)
}

// Director walks the player through the events in order. Each event plays its
// dialogue once; finishing it unlocks the next event.
type Director struct {
	events  []Event
	session *dialogue.Session
	hooks   Hooks
	current int
	log     *slog.Logger
}

// NewDirector builds a director whose session dispatches effects to fx and
// shows speech through p.
func NewDirector(events []Event, fx dialogue.Dispatcher, p dialogue.Presenter, hooks Hooks) *Director {
	d := &Director{
		events: events,
		hooks:  hooks,
		log:    applog.WithComponent("game"),
	}
	d.session = dialogue.New(fx, p, d.eventComplete)
	return d
}

// Resume makes index the current event, clamped to the event count, and spawns
// its particles.
func (d *Director) Resume(index int) {
	d.current = max(0, min(index, len(d.events)))
	if ev, ok := d.Current(); ok {
		d.spawn(ev)
	}
}

// Interact is the player's action key. It advances an open dialogue, or starts
// the current event's dialogue when the player stands on it. It reports whether
// anything happened.
func (d *Director) Interact(overlapping bool) bool {
	if d.session.Active() {
		d.session.Advance()
		return true
	}
	ev, ok := d.Current()
	if !ok || !overlapping {
		return false
	}
	d.log.Debug("event start", slog.Int("event", d.current))
	if d.hooks.OnEventStart != nil {
		d.hooks.OnEventStart(d.current, ev)
	}
	d.session.Start(ev.Dialogue, nil)
	return true
}

// Current returns the event waiting to be played.
func (d *Director) Current() (Event, bool) {
	if d.current >= len(d.events) {
		return Event{}, false
	}
	return d.events[d.current], true
}

// Index is the number of completed events.
func (d *Director) Index() int { return d.current }

// Finished reports whether every event has been played.
func (d *Director) Finished() bool { return d.current >= len(d.events) }

// Session exposes the dialogue session, e.g. to read the line on screen.
func (d *Director) Session() *dialogue.Session { return d.session }

// eventComplete is the session default, so it also runs for dialogues started
// directly on Session; those end no event once the director has finished.
func (d *Director) eventComplete() {
	completed := d.current
	if completed >= len(d.events) {
		return
	}
	d.current++
	if ev, ok := d.Current(); ok {
		d.spawn(ev)
	}
	ev := d.events[completed]
	d.log.Info("event complete", slog.Int("event", completed), slog.String("minigame", ev.TriggersMinigame))
	if ev.TriggersMinigame != "" {
		d.launch(ev.TriggersMinigame)
	}
	if d.hooks.OnEventComplete != nil {
		d.hooks.OnEventComplete(completed, d.current)
	}
}

func (d *Director) spawn(ev Event) {
	if ev.Particles != "" && d.hooks.Spawn != nil {
		d.hooks.Spawn(ev)
	}
}

func (d *Director) launch(id string) {
	if d.hooks.Launcher == nil {
		d.log.Warn("no minigame launcher", slog.String("minigame", id))
		return
	}
	if err := d.hooks.Launcher.Launch(id); err != nil {
		d.log.Error("minigame launch failed", slog.String("minigame", id), slog.Any("err", err))
	}
}
