package replay

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

//go:embed default_script.yaml
var defaultScript []byte

// Script is an ordered list of canned agent answers served in a loop.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one canned /run-agent answer. Items are passed through untouched
// so a script can also describe malformed payloads.
type Step struct {
	UserText string           `yaml:"user_text"`
	BotText  string           `yaml:"bot_text"`
	Type     string           `yaml:"type"`
	Items    []map[string]any `yaml:"items"`
	Delay    time.Duration    `yaml:"delay"`
	Fail     bool             `yaml:"fail"`
	Status   int              `yaml:"status"`
}

func (s Script) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Steps, validation.Required),
	)
}

func (s Step) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Delay, validation.Min(time.Duration(0)), validation.Max(2*time.Minute)),
		validation.Field(&s.Status, validation.When(s.Fail && s.Status != 0, validation.Min(400), validation.Max(599))),
	)
}

// Payload renders the step the way the agent server answers: text fields
// only when set, type null and items empty when there are no results.
func (s Step) Payload() map[string]any {
	out := map[string]any{
		"type":  nil,
		"items": []map[string]any{},
	}
	if s.UserText != "" {
		out["user_text"] = s.UserText
	}
	if s.BotText != "" {
		out["bot_text"] = s.BotText
	}
	if s.Type != "" {
		out["type"] = s.Type
	}
	if len(s.Items) > 0 {
		out["items"] = s.Items
	}
	return out
}

func (s Step) FailureStatus() int {
	if s.Status == 0 {
		return 500
	}
	return s.Status
}

func ParseScript(data []byte) (Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	if err := script.Validate(); err != nil {
		return Script{}, fmt.Errorf("script validation failed: %w", err)
	}
	return script, nil
}

func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return ParseScript(data)
}

// DefaultScript is the built-in demo conversation.
func DefaultScript() Script {
	script, err := ParseScript(defaultScript)
	if err != nil {
		panic(err)
	}
	return script
}
