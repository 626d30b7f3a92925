// Package session owns the lifecycle of one conversational channel bound to
// one document.
package session

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"docchat/entities"
	"docchat/pkg/apperr"
	"docchat/pkg/document/service"
)

// State of one session. CLOSED is terminal.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateOpen:
		return "OPEN"
	case StateClosed:
		return "CLOSED"
	}
	return "UNKNOWN"
}

// Question is the client → server message shape.
type Question struct {
	DocumentID int    `json:"document_id"`
	Question   string `json:"question"`
}

// Conn abstracts the transport so tests can script a channel.
type Conn interface {
	// ReadQuestion blocks until the next inbound message. Any error means
	// the transport is gone and the session must close.
	ReadQuestion() (Question, error)
	SendText(text string) error
	Close() error
}

// Answerer is the slice of the answer engine a session needs.
type Answerer interface {
	Answer(ctx context.Context, docID uint, chunks []entities.Chunk, question string) (string, error)
}

// Manager builds sessions over an accepted connection. Sessions share the
// read-only document store and nothing else.
type Manager struct {
	docs        service.DocumentService
	engine      Answerer
	limit       int
	window      time.Duration
	maxFailures int
}

func NewManager(docs service.DocumentService, engine Answerer, limit int, window time.Duration, maxFailures int) *Manager {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = 30 * time.Second
	}
	if maxFailures <= 0 {
		maxFailures = 3
	}
	return &Manager{docs: docs, engine: engine, limit: limit, window: window, maxFailures: maxFailures}
}

type session struct {
	id      string
	conn    Conn
	state   State
	limiter *rate.Limiter
	// chunk sequence cached once at open; documents are immutable
	docID  uint
	chunks []entities.Chunk
}

// Serve runs one session to completion. It returns when the transport drops,
// the document cannot be resolved, or repeated failures close the channel.
// Questions are handled strictly in arrival order; a slow answer delays the
// next read on purpose.
func (m *Manager) Serve(ctx context.Context, conn Conn, docID uint) {
	s := &session{
		id:      uuid.NewString(),
		conn:    conn,
		state:   StateConnecting,
		limiter: rate.NewLimiter(rate.Limit(float64(m.limit)/m.window.Seconds()), m.limit),
		docID:   docID,
	}
	defer s.close()

	doc, chunks, err := m.docs.Get(ctx, docID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			_ = conn.SendText("Error: Document not found")
		} else {
			log.Printf("[ws %s] resolve document %d: %v", s.id, docID, err)
			_ = conn.SendText("Error: Document unavailable")
		}
		return
	}
	s.chunks = chunks

	if err := conn.SendText("file: " + doc.Filename); err != nil {
		return
	}
	s.state = StateOpen
	log.Printf("[ws %s] open, document %d (%s), %d chunks", s.id, docID, doc.Filename, len(chunks))

	failures := 0
	for s.state == StateOpen {
		q, err := conn.ReadQuestion()
		if err != nil {
			// normal termination, the client went away
			log.Printf("[ws %s] disconnect: %v", s.id, err)
			return
		}
		if ctx.Err() != nil {
			return
		}

		if !s.limiter.Allow() {
			// dropped, not queued; the channel stays open
			if err := conn.SendText("Error: 429 Too Many Requests. Slow down."); err != nil {
				return
			}
			continue
		}

		if err := conn.SendText("You: " + q.Question); err != nil {
			return
		}

		answer, err := m.engine.Answer(ctx, s.docID, s.chunks, q.Question)
		if err != nil {
			failures++
			log.Printf("[ws %s] answer failed (%d consecutive): %v", s.id, failures, err)
			if sendErr := conn.SendText("Error: " + userMessage(err)); sendErr != nil {
				return
			}
			if failures >= m.maxFailures {
				log.Printf("[ws %s] closing after %d consecutive failures", s.id, failures)
				s.state = StateClosed
			}
			continue
		}
		failures = 0

		if err := conn.SendText("Bot: " + answer); err != nil {
			return
		}
	}
}

func (s *session) close() {
	s.state = StateClosed
	_ = s.conn.Close()
	log.Printf("[ws %s] closed", s.id)
}

// userMessage maps an internal failure to the text a client sees. Details of
// collaborator errors stay in the logs.
func userMessage(err error) string {
	switch {
	case apperr.IsKind(err, apperr.KindEmbedding):
		return "could not index the document right now, please retry"
	case apperr.IsKind(err, apperr.KindGeneration):
		return "could not generate an answer right now, please retry"
	case apperr.IsKind(err, apperr.KindStorage):
		return "document storage is unavailable"
	}
	return "internal error"
}
