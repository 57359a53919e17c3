package models

import (
	"fmt"
	"strings"
)

// StateKind enumerates the four lookup states a presentation layer renders
type StateKind int

const (
	StateIdle StateKind = iota
	StateLoading
	StateSuccess
	StateError
)

var stateKindNames = map[StateKind]string{
	StateIdle:    "idle",
	StateLoading: "loading",
	StateSuccess: "success",
	StateError:   "error",
}

func (k StateKind) String() string {
	if name, ok := stateKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("StateKind(%d)", int(k))
}

// MarshalText encodes the kind as its lowercase name
func (k StateKind) MarshalText() ([]byte, error) {
	name, ok := stateKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown state kind: %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText parses a lowercase state name
func (k *StateKind) UnmarshalText(text []byte) error {
	value := strings.ToLower(strings.TrimSpace(string(text)))
	for kind, name := range stateKindNames {
		if name == value {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown state kind: %q", value)
}

// UiState is the result of the latest lookup attempt. Exactly one kind is
// current at a time; Weather is set only for StateSuccess and Message only for
// StateError. Build values with the constructors below.
type UiState struct {
	Kind    StateKind      `json:"state"`
	Weather *WeatherRecord `json:"weather,omitempty"`
	Message string         `json:"message,omitempty"`
}

func IdleState() UiState {
	return UiState{Kind: StateIdle}
}

func LoadingState() UiState {
	return UiState{Kind: StateLoading}
}

// SuccessState wraps a copy of record so later changes to the caller's value
// cannot leak into published state.
func SuccessState(record WeatherRecord) UiState {
	rec := record
	if record.Weather != nil {
		rec.Weather = append([]Condition(nil), record.Weather...)
	}
	return UiState{Kind: StateSuccess, Weather: &rec}
}

func ErrorState(message string) UiState {
	return UiState{Kind: StateError, Message: message}
}

// IsTerminal reports whether the state ends a lookup (success or error)
func (s UiState) IsTerminal() bool {
	return s.Kind == StateSuccess || s.Kind == StateError
}

func (s UiState) String() string {
	switch s.Kind {
	case StateSuccess:
		if s.Weather != nil {
			return fmt.Sprintf("success(%s)", s.Weather.Name)
		}
		return "success"
	case StateError:
		return fmt.Sprintf("error(%s)", s.Message)
	default:
		return s.Kind.String()
	}
}

// LastCity is the optional, most recently successful city query
type LastCity struct {
	City    string `json:"city,omitempty"`
	Present bool   `json:"present"`
}

// NoLastCity is the value before any successful search was persisted
func NoLastCity() LastCity {
	return LastCity{}
}

func KnownLastCity(city string) LastCity {
	return LastCity{City: city, Present: true}
}

// Usable reports whether the value can be replayed as a search
func (c LastCity) Usable() bool {
	return c.Present && strings.TrimSpace(c.City) != ""
}
