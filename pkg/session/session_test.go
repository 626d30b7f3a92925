package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/entities"
	"docchat/pkg/apperr"
)

type fakeDocs struct {
	doc    *entities.Document
	chunks []entities.Chunk
	err    error
}

func (f *fakeDocs) Ingest(ctx context.Context, filename string, data []byte) (*entities.Document, int, error) {
	return nil, 0, errors.New("not used")
}

func (f *fakeDocs) Get(ctx context.Context, id uint) (*entities.Document, []entities.Chunk, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.doc, f.chunks, nil
}

type fakeConn struct {
	questions []Question
	idx       int
	sent      []string
	closed    bool
}

func (c *fakeConn) ReadQuestion() (Question, error) {
	if c.idx >= len(c.questions) {
		return Question{}, io.EOF
	}
	q := c.questions[c.idx]
	c.idx++
	return q, nil
}

func (c *fakeConn) SendText(text string) error {
	c.sent = append(c.sent, text)
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

type fakeEngine struct {
	answers []string
	errs    []error
	call    int
}

func (e *fakeEngine) Answer(ctx context.Context, docID uint, chunks []entities.Chunk, question string) (string, error) {
	i := e.call
	e.call++
	var err error
	if i < len(e.errs) {
		err = e.errs[i]
	}
	ans := "answer"
	if i < len(e.answers) {
		ans = e.answers[i]
	}
	return ans, err
}

func openDocs() *fakeDocs {
	return &fakeDocs{
		doc:    &entities.Document{ID: 1, Filename: "dummy.pdf"},
		chunks: []entities.Chunk{{Text: "a short sentence", Page: 1}},
	}
}

func questions(qs ...string) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = Question{DocumentID: 1, Question: q}
	}
	return out
}

func TestServe_DocumentNotFound(t *testing.T) {
	m := NewManager(&fakeDocs{err: apperr.ErrNotFound}, &fakeEngine{}, 5, time.Minute, 3)
	conn := &fakeConn{questions: questions("never read")}

	m.Serve(context.Background(), conn, 42)

	require.Equal(t, []string{"Error: Document not found"}, conn.sent)
	assert.True(t, conn.closed)
	assert.Zero(t, conn.idx, "no question may be read after a failed open")
}

func TestServe_EchoThenAnswerInOrder(t *testing.T) {
	engine := &fakeEngine{answers: []string{"first answer", "second answer"}}
	m := NewManager(openDocs(), engine, 5, time.Minute, 3)
	conn := &fakeConn{questions: questions("q one", "q two")}

	m.Serve(context.Background(), conn, 1)

	require.Equal(t, []string{
		"file: dummy.pdf",
		"You: q one",
		"Bot: first answer",
		"You: q two",
		"Bot: second answer",
	}, conn.sent)
	assert.True(t, conn.closed)
}

func TestServe_RateLimitDropsExcessAndStaysOpen(t *testing.T) {
	engine := &fakeEngine{answers: []string{"a1", "a2"}}
	m := NewManager(openDocs(), engine, 2, time.Minute, 3)
	conn := &fakeConn{questions: questions("q1", "q2", "q3")}

	m.Serve(context.Background(), conn, 1)

	require.Equal(t, []string{
		"file: dummy.pdf",
		"You: q1",
		"Bot: a1",
		"You: q2",
		"Bot: a2",
		"Error: 429 Too Many Requests. Slow down.",
	}, conn.sent)
	// the dropped question never reached the engine
	assert.Equal(t, 2, engine.call)
}

func TestServe_AnswerFailureKeepsSessionOpen(t *testing.T) {
	engine := &fakeEngine{
		errs:    []error{apperr.Generation(errors.New("down")), nil},
		answers: []string{"", "recovered"},
	}
	m := NewManager(openDocs(), engine, 5, time.Minute, 3)
	conn := &fakeConn{questions: questions("bad", "good")}

	m.Serve(context.Background(), conn, 1)

	require.Len(t, conn.sent, 5)
	assert.Equal(t, "You: bad", conn.sent[1])
	assert.Contains(t, conn.sent[2], "Error: ")
	assert.Equal(t, "You: good", conn.sent[3])
	assert.Equal(t, "Bot: recovered", conn.sent[4])
}

func TestServe_ClosesAfterConsecutiveFailures(t *testing.T) {
	fail := apperr.Generation(errors.New("down"))
	engine := &fakeEngine{errs: []error{fail, fail, fail, nil}}
	m := NewManager(openDocs(), engine, 10, time.Minute, 3)
	conn := &fakeConn{questions: questions("q1", "q2", "q3", "q4")}

	m.Serve(context.Background(), conn, 1)

	assert.True(t, conn.closed)
	assert.Equal(t, 3, engine.call, "session must close before the fourth question")
	assert.Equal(t, 3, conn.idx)
}

func TestServe_FailureCounterResetsOnSuccess(t *testing.T) {
	fail := apperr.Generation(errors.New("down"))
	engine := &fakeEngine{
		errs:    []error{fail, fail, nil, fail, nil},
		answers: []string{"", "", "ok", "", "ok2"},
	}
	m := NewManager(openDocs(), engine, 10, time.Minute, 3)
	conn := &fakeConn{questions: questions("q1", "q2", "q3", "q4", "q5")}

	m.Serve(context.Background(), conn, 1)

	// two failures, a success, another failure: never three consecutive
	assert.Equal(t, 5, engine.call)
	assert.Equal(t, "Bot: ok2", conn.sent[len(conn.sent)-1])
}

func TestServe_ErrorDetailIsSanitized(t *testing.T) {
	secret := fmt.Errorf("bearer token rejected by upstream")
	engine := &fakeEngine{errs: []error{apperr.Embedding(secret)}}
	m := NewManager(openDocs(), engine, 5, time.Minute, 3)
	conn := &fakeConn{questions: questions("q")}

	m.Serve(context.Background(), conn, 1)

	require.Len(t, conn.sent, 3)
	assert.NotContains(t, conn.sent[2], "bearer token")
	assert.Contains(t, conn.sent[2], "Error: ")
}
