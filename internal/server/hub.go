package server

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"dmh-game/internal/database"
	"dmh-game/internal/game"
	"dmh-game/internal/protocol"

	"github.com/google/uuid"
)

// clientMessage is a helper struct to pass messages along with the client reference.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

const defaultIdleEvictSeconds = 120

// Hub manages active WebSocket connections and the single game session.
// There is one game at a time; when it ends, the next join starts a fresh
// one. All session state is owned by the Run goroutine, so only the clients
// map needs a lock (the broadcast path reads it from other goroutines).
type Hub struct {
	db *database.Service

	clients  map[*Client]bool
	clientMu sync.RWMutex

	game     *game.Game
	recorded bool

	// session token -> player name, for seat reclaim after a reconnect
	sessions map[string]string
	// player name -> disconnect time, for evicting players who never return
	absent     map[string]time.Time
	evictAfter time.Duration

	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client
}

// NewHub creates a new Hub instance with a fresh game.
func NewHub(db *database.Service) *Hub {
	evict := time.Duration(defaultIdleEvictSeconds) * time.Second
	if raw := os.Getenv("DMH_IDLE_EVICT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil {
			evict = time.Duration(secs) * time.Second
		} else {
			log.Printf("Invalid DMH_IDLE_EVICT_SECONDS %q, using default", raw)
		}
	}

	return &Hub{
		db:             db,
		clients:        make(map[*Client]bool),
		game:           game.New(nil),
		sessions:       make(map[string]string),
		absent:         make(map[string]time.Time),
		evictAfter:     evict,
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
	}
}

// Run starts the Hub's main loop.
func (h *Hub) Run() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString()
			log.Printf("Client %s (%s) connected", client.ID, client.conn.RemoteAddr())
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			h.clientMu.Lock()
			_, clientExists := h.clients[client]
			if clientExists {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client %s (%s) disconnected", client.ID, client.Name)
			}
			h.clientMu.Unlock()

			if clientExists && client.Name != "" && !h.nameConnected(client.Name) {
				// keep their seat warm for a while in case they reconnect
				h.absent[client.Name] = time.Now()
			}

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)

		case <-ticker.C:
			h.evictAbsent()
		}
	}
}

// nameConnected reports whether any connected client currently holds a name.
func (h *Hub) nameConnected(name string) bool {
	h.clientMu.RLock()
	defer h.clientMu.RUnlock()
	for client := range h.clients {
		if client.Name == name {
			return true
		}
	}
	return false
}

// evictAbsent removes players who disconnected and never came back.
func (h *Hub) evictAbsent() {
	if h.evictAfter <= 0 {
		return
	}
	changed := false
	for name, since := range h.absent {
		if time.Since(since) < h.evictAfter {
			continue
		}
		delete(h.absent, name)
		log.Printf("Evicting player %q, disconnected for over %s", name, h.evictAfter)
		if err := h.game.RemovePlayer(name); err != nil {
			log.Printf("Eviction of %q failed: %v", name, err)
			continue
		}
		h.dropSessionsFor(name)
		changed = true
	}
	if changed {
		h.maybeRecordResult()
		h.broadcastState()
	}
}

func (h *Hub) dropSessionsFor(name string) {
	for token, sessName := range h.sessions {
		if sessName == name {
			delete(h.sessions, token)
		}
	}
}

// handleMessage processes a message received from a client.
func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case "join":
		h.handleJoin(client, msg)
	case "leave":
		h.handleLeave(client)
	case "start":
		h.handleStart(client)
	case "action":
		h.handleAction(client, msg)
	case "state":
		h.sendStateToClient(client)
	case "reset":
		// hard reset for development. TODO: gate this behind an admin
		// token before exposing the server anywhere public
		log.Printf("Hard reset invoked by client %s", client.ID)
		h.resetGame()
		h.broadcastState()
	case "ping":
		pongMsg, _ := protocol.NewMessage("pong", nil)
		client.send <- pongMsg
	default:
		log.Printf("Received unknown message type '%s' from client %s (%s)", msg.Type, client.ID, client.Name)
		h.sendErrorToClient(client, "Unknown message type.")
	}
}

func (h *Hub) resetGame() {
	h.game = game.New(nil)
	h.recorded = false
	h.sessions = make(map[string]string)
	h.absent = make(map[string]time.Time)
	h.clientMu.Lock()
	for c := range h.clients {
		c.Name = ""
	}
	h.clientMu.Unlock()
}

// handleJoin seats a client: either reclaiming an old seat by token, or
// adding a new player. Joining after a finished game resets it first so the
// table is always open for the next round.
func (h *Hub) handleJoin(client *Client, msg protocol.Message) {
	var payload protocol.JoinPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("Error unmarshalling join payload from client %s: %v", client.ID, err)
		h.sendErrorToClient(client, "Invalid join message format.")
		return
	}

	if payload.Token != "" {
		name, ok := h.sessions[payload.Token]
		if !ok {
			h.sendErrorToClient(client, "Unknown session token.")
			return
		}
		client.Name = name
		delete(h.absent, name)
		log.Printf("Client %s reclaimed seat %q", client.ID, name)
		h.sendJoined(client, payload.Token)
		h.sendStateToClient(client)
		return
	}

	if client.Name != "" {
		h.sendErrorToClient(client, "Already joined.")
		return
	}
	if h.game.Phase() == game.PhaseOver {
		log.Printf("Game over, resetting for new joiners")
		h.resetGame()
	}
	if err := h.game.AddPlayer(payload.Name); err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}
	client.Name = payload.Name
	token := uuid.NewString()
	h.sessions[token] = payload.Name
	h.sendJoined(client, token)
	h.broadcastState()
}

func (h *Hub) handleLeave(client *Client) {
	if client.Name == "" {
		h.sendErrorToClient(client, "Not in the game.")
		return
	}
	name := client.Name
	if err := h.game.RemovePlayer(name); err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}
	client.Name = ""
	h.dropSessionsFor(name)
	delete(h.absent, name)
	h.maybeRecordResult()
	h.broadcastState()
}

func (h *Hub) handleStart(client *Client) {
	if client.Name == "" {
		h.sendErrorToClient(client, "Not in the game.")
		return
	}
	if err := h.game.StartGame(); err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}
	h.maybeRecordResult()
	h.broadcastState()
}

func (h *Hub) handleAction(client *Client, msg protocol.Message) {
	if client.Name == "" {
		h.sendErrorToClient(client, "Not in the game.")
		return
	}
	var params protocol.ActionParams
	if err := json.Unmarshal(msg.Payload, &params); err != nil {
		log.Printf("Error unmarshalling action payload from client %s: %v", client.ID, err)
		h.sendErrorToClient(client, "Invalid action message format.")
		return
	}
	action, err := params.ToAction()
	if err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}
	if err := h.game.DoAction(client.Name, action); err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}
	h.maybeRecordResult()
	h.broadcastState()
}

// maybeRecordResult persists the outcome the first time the game hits the
// over phase. An empty winner column means a draw.
func (h *Hub) maybeRecordResult() {
	if h.recorded || h.game.Phase() != game.PhaseOver {
		return
	}
	h.recorded = true
	winner, _ := h.game.Winner()
	result := database.NewGameResult(h.game.ID, winner, h.game.Players())
	if err := h.db.Insert(result); err != nil {
		log.Printf("Failed to record result for game %s: %v", h.game.ID, err)
		return
	}
	log.Printf("Recorded result for game %s (winner %q)", h.game.ID, winner)
}

func (h *Hub) sendJoined(client *Client, token string) {
	payload := protocol.JoinedPayload{Token: token, Name: client.Name}
	msgBytes, err := protocol.NewMessage("joined", payload)
	if err != nil {
		log.Printf("Error creating joined message for client %s: %v", client.ID, err)
		return
	}
	h.sendToClient(client, msgBytes)
}

// broadcastState pushes each connected client its own redacted snapshot.
func (h *Hub) broadcastState() {
	h.clientMu.RLock()
	clientsToSend := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clientsToSend = append(clientsToSend, client)
	}
	h.clientMu.RUnlock()

	for _, client := range clientsToSend {
		h.sendStateToClient(client)
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	view := h.game.GetState(client.Name)
	msgBytes, err := protocol.NewMessage("state", protocol.StatePayload{State: view})
	if err != nil {
		log.Printf("Error creating state message for client %s: %v", client.ID, err)
		return
	}
	h.sendToClient(client, msgBytes)
}

// sendToClient delivers a message without blocking the hub goroutine. A
// client whose channel is full is assumed gone and gets unregistered.
func (h *Hub) sendToClient(client *Client, message []byte) {
	select {
	case client.send <- message:
	default:
		log.Printf("Failed to send message to client %s (channel full or closed), initiating cleanup.", client.ID)
		go func() {
			h.clientMu.RLock()
			_, stillConnected := h.clients[client]
			h.clientMu.RUnlock()
			if stillConnected {
				h.unregister <- client
			}
		}()
	}
}

// sendErrorToClient sends a generic error message to a specific client.
func (h *Hub) sendErrorToClient(client *Client, errorMsg string) {
	payload := protocol.ErrorPayload{Message: errorMsg}
	msgBytes, err := protocol.NewMessage("error", payload)
	if err != nil {
		log.Printf("Error creating error message for client %s: %v", client.ID, err)
		return
	}
	h.sendToClient(client, msgBytes)
}
