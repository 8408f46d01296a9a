package server

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/loop/config"
)

// GameServer is the interface clients use to talk to the session hub.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID uuid.UUID)
	ReportScore(clientID uuid.UUID, score int)
	TopScores(n int) []TopScoreEntry
	Players() int
	Store() game.Store
}

// Server tracks the terminal sessions that share one record store. Each
// session runs its own game; the server only relays events between them.
type Server struct {
	store  game.Store
	logger *log.Logger

	mu           sync.RWMutex
	clients      map[uuid.UUID]*ClientHandle
	nextSeq      int
	record       int // Best score seen by any session
	shuttingDown bool
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       uuid.UUID
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to the client

	best int // Best score this connection
	seq  int // Join order, for deterministic tie-breaks
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type     ClientEventType
	Username string // For EventNewRecord
	Score    int    // For EventNewRecord
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventNewRecord                      // Another session beat the stored high score
)

// NewServer creates a hub around store. A nil logger discards output.
func NewServer(store game.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		store:   store,
		logger:  logger,
		clients: make(map[uuid.UUID]*ClientHandle),
		record:  store.LoadHighScore(),
	}
}

// Store returns the shared record store.
func (s *Server) Store() game.Store {
	return s.store
}

// RegisterClient registers a new client with the given username and returns its handle.
// Clients joining during shutdown are told so immediately.
func (s *Server) RegisterClient(username string) *ClientHandle {
	handle := &ClientHandle{
		ID:       uuid.New(),
		Username: displayName(username),
		EventsCh: make(chan ClientEvent, 16),
	}

	s.mu.Lock()
	handle.seq = s.nextSeq
	s.nextSeq++
	s.clients[handle.ID] = handle
	players := len(s.clients)
	if s.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}
	s.mu.Unlock()

	s.logger.Info("client registered", "id", handle.ID, "user", handle.Username, "players", players)
	return handle
}

// UnregisterClient removes a client and closes its event channel.
func (s *Server) UnregisterClient(clientID uuid.UUID) {
	s.mu.Lock()
	handle, ok := s.clients[clientID]
	if ok {
		close(handle.EventsCh)
		delete(s.clients, clientID)
	}
	players := len(s.clients)
	s.mu.Unlock()

	if ok {
		s.logger.Info("client unregistered", "id", clientID, "user", handle.Username, "best", handle.best, "players", players)
	}
}

// ReportScore records a client's current score. When it beats every score seen
// so far, the other clients are notified.
func (s *Server) ReportScore(clientID uuid.UUID, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	if score > handle.best {
		handle.best = score
	}
	if score <= s.record {
		return
	}
	s.record = score

	event := ClientEvent{Type: EventNewRecord, Username: handle.Username, Score: score}
	for id, other := range s.clients {
		if id == clientID {
			continue
		}
		select {
		case other.EventsCh <- event:
		default:
			// Client is not draining events, drop
		}
	}
}

// TopScores returns up to n connected players with a positive best score,
// highest first. Ties go to whoever joined first.
func (s *Server) TopScores(n int) []TopScoreEntry {
	s.mu.RLock()
	entries := make([]TopScoreEntry, 0, len(s.clients))
	for _, h := range s.clients {
		if h.best > 0 {
			entries = append(entries, TopScoreEntry{Username: h.Username, Score: h.best, seq: h.seq})
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].seq < entries[j].seq
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies all connected clients and waits for them to disconnect,
// up to the given timeout.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.Unlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Players() == 0 {
			return
		}
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "players", s.Players())
			return
		case <-ticker.C:
		}
	}
}

// displayName trims a username to the display limit.
func displayName(username string) string {
	if username == "" {
		return "anonymous"
	}
	r := []rune(username)
	if len(r) > config.MaxUsernameLength {
		r = r[:config.MaxUsernameLength]
	}
	return string(r)
}
