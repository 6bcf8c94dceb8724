package protocol

import (
	"encoding/json"
	"errors"

	"dmh-game/internal/game"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // Type of the message (e.g., "join", "action")
	Payload json.RawMessage `json:"payload,omitempty"` // Raw JSON payload, allows flexible structures
}

// --- Client -> Server Payload Structs ---

type JoinPayload struct {
	Name  string `json:"name"`
	Token string `json:"token,omitempty"` // resend to reclaim a seat after reconnecting
}

// ActionParams carries one game action over the wire. Index is a pointer so
// an absent index is distinguishable from index 0.
type ActionParams struct {
	Action  string `json:"action"`
	Index   *int   `json:"index,omitempty"`
	Target  string `json:"target,omitempty"`
	Indices []int  `json:"indices,omitempty"`
}

// ToAction converts wire params into a typed game action. A missing index
// becomes -1 so the game rejects it as out of bounds rather than treating it
// as a card position.
func (p ActionParams) ToAction() (game.Action, error) {
	index := -1
	if p.Index != nil {
		index = *p.Index
	}
	switch p.Action {
	case "call_hands":
		return game.CallHands{Index: index}, nil
	case "continue_hands":
		return game.ContinueHands{Index: index}, nil
	case "call_toss":
		return game.CallToss{Index: index}, nil
	case "continue_toss":
		return game.ContinueToss{Index: index}, nil
	case "call_shoot":
		return game.CallShoot{Target: p.Target}, nil
	case "lose_life":
		return game.LoseLife{Index: index}, nil
	case "continue_replace":
		if p.Indices == nil {
			return nil, errors.New("cannot replace, indices not array")
		}
		return game.ContinueReplace{Indices: p.Indices}, nil
	case "call_fight":
		return game.CallFight{}, nil
	}
	return nil, errors.New("invalid action, unknown")
}

// --- Server -> Client Payload Structs ---

type JoinedPayload struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// StatePayload is a per-viewer snapshot push, sent after every change.
type StatePayload struct {
	State game.StateView `json:"state"`
}

// Helper function to create a JSON message
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	// Handle nil payload specifically
	if payload == nil {
		msg := Message{
			Type:    msgType,
			Payload: nil,
		}
		return json.Marshal(msg)
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg := Message{
		Type:    msgType,
		Payload: payloadBytes,
	}
	return json.Marshal(msg)
}
