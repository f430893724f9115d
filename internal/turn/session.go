package turn

import (
	"time"

	"voiceagent/internal/results"
)

type Speaker string

const (
	SpeakerAgent Speaker = "agent"
	SpeakerUser  Speaker = "user"
)

type Utterance struct {
	Speaker Speaker
	Text    string
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingResponse
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingResponse:
		return "awaiting_response"
	default:
		return "unknown"
	}
}

const (
	GreetingText         = "System Online. Neural Link Established."
	SilenceText          = "(Silence)"
	ConnectionFailedText = "⚠ Error: connection to the voice agent failed. Ensure the agent server is running."
)

// Session is the state of one client session: the phase, the append-only
// transcript and the results panel. Only the Controller mutates it.
type Session struct {
	phase      Phase
	transcript []Utterance
	panel      results.PanelState

	turnID    string
	startedAt time.Time
}

func NewSession() *Session {
	return &Session{
		phase:      PhaseIdle,
		transcript: []Utterance{{Speaker: SpeakerAgent, Text: GreetingText}},
	}
}

func (s *Session) append(speaker Speaker, text string) Utterance {
	u := Utterance{Speaker: speaker, Text: text}
	s.transcript = append(s.transcript, u)
	return u
}

func (s *Session) snapshot() []Utterance {
	out := make([]Utterance, len(s.transcript))
	copy(out, s.transcript)
	return out
}
