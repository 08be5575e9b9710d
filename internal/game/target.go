package game

import (
	"encoding/json"
	"fmt"

	"github.com/lox/donkey/internal/deck"
)

// TargetKind discriminates the placement target variants
type TargetKind string

const (
	// TargetPersonal places the staged card on the actor's own personal pile
	TargetPersonal TargetKind = "personal"
	// TargetStarter plays onto the shared starter pile for a suit
	TargetStarter TargetKind = "starter"
	// TargetPlayer plays onto another player's personal pile
	TargetPlayer TargetKind = "player"
)

// Target is a tagged placement destination. Use the constructors; only the
// fields relevant to the kind are meaningful.
type Target struct {
	Kind     TargetKind
	Suit     deck.Suit // TargetStarter only
	PlayerID string    // TargetPlayer only
}

// PersonalTarget targets the actor's own personal pile
func PersonalTarget() Target {
	return Target{Kind: TargetPersonal}
}

// StarterTarget targets the starter pile for the given suit
func StarterTarget(suit deck.Suit) Target {
	return Target{Kind: TargetStarter, Suit: suit}
}

// PlayerTarget targets another player's personal pile
func PlayerTarget(playerID string) Target {
	return Target{Kind: TargetPlayer, PlayerID: playerID}
}

// String describes the target for logging
func (t Target) String() string {
	switch t.Kind {
	case TargetPersonal:
		return "personal"
	case TargetStarter:
		return fmt.Sprintf("starter/%s", t.Suit)
	case TargetPlayer:
		return fmt.Sprintf("player/%s", t.PlayerID)
	default:
		return "unknown"
	}
}

type targetJSON struct {
	Type     TargetKind `json:"type"`
	Suit     *deck.Suit `json:"suit,omitempty"`
	PlayerID string     `json:"playerId,omitempty"`
}

// MarshalJSON implements json.Marshaler, emitting only the fields the
// target kind carries
func (t Target) MarshalJSON() ([]byte, error) {
	out := targetJSON{Type: t.Kind, PlayerID: t.PlayerID}
	if t.Kind == TargetStarter {
		suit := t.Suit
		out.Suit = &suit
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Target) UnmarshalJSON(data []byte) error {
	var in targetJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch in.Type {
	case TargetPersonal:
		*t = PersonalTarget()
	case TargetStarter:
		if in.Suit == nil {
			return fmt.Errorf("starter target requires a suit")
		}
		*t = StarterTarget(*in.Suit)
	case TargetPlayer:
		if in.PlayerID == "" {
			return fmt.Errorf("player target requires a playerId")
		}
		*t = PlayerTarget(in.PlayerID)
	default:
		return fmt.Errorf("unknown target type: %q", in.Type)
	}
	return nil
}
