package record

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sgf_engine/internal/domain/record"
	errs "sgf_engine/internal/errors"
	"sgf_engine/internal/middleware"
	recorduc "sgf_engine/internal/usecase/record"
)

const game = "(;GM[1]SZ[5]PB[b]PW[w];B[ba];W[aa];B[ab])"

type memoryStore struct {
	mu      sync.Mutex
	records map[string]*record.Record
}

func (s *memoryStore) Save(_ context.Context, rec *record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, errs.ErrRecordNotFound
	}
	return rec, nil
}

func (s *memoryStore) List(_ context.Context, page int) (*record.RecordPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := &record.RecordPage{PageNum: page, TotalPages: 1, Records: []record.Record{}}
	for _, rec := range s.records {
		out.Records = append(out.Records, *rec)
	}
	return out, nil
}

type envelope[T any] struct {
	Status int
	Body   T
}

func newRouter(t *testing.T, maxBytes int) (http.Handler, *memoryStore) {
	t.Helper()
	store := &memoryStore{records: map[string]*record.Record{}}
	log := zap.NewNop().Sugar()
	uc := recorduc.NewRecordUseCase(store, nil, nil, log, maxBytes)

	r := chi.NewRouter()
	r.Use(middleware.MaxBytes(int64(maxBytes) + 1024))
	NewRecordHandler(log, uc).Routes(r)
	return r, store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env.Body
}

func sgfBody(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}

func TestHandleCheck(t *testing.T) {
	h, _ := newRouter(t, 1<<16)

	w := do(t, h, http.MethodPost, "/sgf/check", sgfBody(t, CheckRequest{Sgf: game}))
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[record.Summary](t, w)
	require.Len(t, summary.Games, 1)
	assert.Equal(t, 3, summary.Games[0].Moves)

	w = do(t, h, http.MethodPost, "/sgf/check", sgfBody(t, CheckRequest{Sgf: "(;GM[1]SZ[5];KO[])"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/sgf/check", `{"sgf":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCheckRuleInResponse(t *testing.T) {
	h, _ := newRouter(t, 1<<16)

	w := do(t, h, http.MethodPost, "/sgf/check", sgfBody(t, CheckRequest{Sgf: "(;GM[1]SZ[5];B[ff])"}))
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode[struct {
		Kind string
		Rule string
	}](t, w)
	assert.Equal(t, "game", body.Kind)
	assert.Equal(t, "out-of-bounds", body.Rule)
}

func TestHandleCheckTooLarge(t *testing.T) {
	h, _ := newRouter(t, 16)

	w := do(t, h, http.MethodPost, "/sgf/check", sgfBody(t, CheckRequest{Sgf: game}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = do(t, h, http.MethodPost, "/sgf/check", sgfBody(t, CheckRequest{Sgf: strings.Repeat("x", 4096)}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHandleGoban(t *testing.T) {
	h, _ := newRouter(t, 1<<16)

	w := do(t, h, http.MethodPost, "/sgf/goban", sgfBody(t, GobanRequest{Sgf: game, Path: []int{0, 0, 0}}))
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[record.GobanView](t, w)
	assert.Equal(t, 1, view.CapturedWhite)
	require.NotNil(t, view.MoveNumber)
	assert.Equal(t, 3, *view.MoveNumber)

	w = do(t, h, http.MethodPost, "/sgf/goban", sgfBody(t, GobanRequest{Sgf: game, Path: []int{1}}))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, "/sgf/goban", sgfBody(t, GobanRequest{Sgf: game, Game: 2}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordLifecycle(t *testing.T) {
	h, store := newRouter(t, 1<<16)

	w := do(t, h, http.MethodPost, "/records", sgfBody(t, StoreRequest{Name: "ladder", Sgf: game, Level: 2}))
	require.Equal(t, http.StatusCreated, w.Code)
	rec := decode[record.Record](t, w)
	assert.Contains(t, store.records, rec.ID)

	w = do(t, h, http.MethodGet, "/records/"+rec.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ladder", decode[record.Record](t, w).Name)

	w = do(t, h, http.MethodGet, "/records?page=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[record.RecordPage](t, w).Records, 1)

	w = do(t, h, http.MethodGet, "/records/"+rec.ID+"/goban?path=0.0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{0, 0}, decode[record.GobanView](t, w).Path)

	w = do(t, h, http.MethodGet, "/records/"+rec.ID+"/sgf", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, game, decode[SgfResponse](t, w).Sgf)

	w = do(t, h, http.MethodGet, "/records/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/records/"+rec.ID+"/goban?path=a.b", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/records?page=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/records", sgfBody(t, StoreRequest{Sgf: game}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleReplay(t *testing.T) {
	h, _ := newRouter(t, 1<<16)
	server := httptest.NewServer(h)
	defer server.Close()

	w := do(t, h, http.MethodPost, "/records", sgfBody(t, StoreRequest{Name: "r", Sgf: game}))
	require.Equal(t, http.StatusCreated, w.Code)
	rec := decode[record.Record](t, w)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/records/" + rec.ID + "/replay"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var moves []int
	for {
		var view record.GobanView
		if err := conn.ReadJSON(&view); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), err.Error())
			break
		}
		n := 0
		if view.MoveNumber != nil {
			n = *view.MoveNumber
		}
		moves = append(moves, n)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, moves)

	_, resp, err := websocket.DefaultDialer.Dial(strings.Replace(url, rec.ID, "missing", 1), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCloseReasonKeepsWholeCharacters(t *testing.T) {
	reason := closeReason(errors.New("a" + strings.Repeat("é", 100)))
	assert.True(t, utf8.ValidString(reason))
	assert.Len(t, reason, 119)

	assert.Equal(t, "short", closeReason(errors.New("short")))
}
