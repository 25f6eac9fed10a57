package editor

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Script is a list of events that can be replayed on a session, eg to
// render a board from the command line:
//
//	name: checkout
//	clock: 1700000000000
//	events:
//	  - {type: drop, kind: database, at: {x: 120, y: 80}}
//	  - {type: select, node: "1"}
//	  - {type: keydown, key: d, ctrl: true}
type Script struct {
	Name string `yaml:"name,omitempty"`

	// Clock, in Unix milliseconds, pins node ids so replays are repeatable.
	Clock int64 `yaml:"clock,omitempty"`

	Events []Event `yaml:"events"`
}

func ParseScript(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("error parsing script: %w", err)
	}
	return &sc, nil
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading script '%s': %w", path, err)
	}
	sc, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

// Options returns base with the script's clock applied.
func (sc *Script) Options(base Options) Options {
	if sc.Clock != 0 {
		t := time.UnixMilli(sc.Clock)
		base.Now = func() time.Time { return t }
	}
	return base
}

// Replay dispatches every event in order and returns how many changed the
// graph. It stops at the first malformed event.
func (sc *Script) Replay(s *Session) (int, error) {
	changes := 0
	for i, ev := range sc.Events {
		changed, err := s.Dispatch(ev)
		if err != nil {
			return changes, fmt.Errorf("event %d (%s): %w", i, ev.Type, err)
		}
		if changed {
			changes++
		}
	}
	return changes, nil
}

// Run replays the script on a new session built from base.
func (sc *Script) Run(base Options) (*Session, error) {
	s := NewSession(sc.Options(base))
	if _, err := sc.Replay(s); err != nil {
		return s, err
	}
	return s, nil
}
