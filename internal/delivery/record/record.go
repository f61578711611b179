package record

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"sgf_engine/internal/domain/record"
	errs "sgf_engine/internal/errors"
	"sgf_engine/internal/httpresponse"
	recorduc "sgf_engine/internal/usecase/record"
	"sgf_engine/internal/utils"
)

type RecordHandler struct {
	log      *zap.SugaredLogger
	recordUC *recorduc.RecordUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewRecordHandler(log *zap.SugaredLogger, recordUC *recorduc.RecordUseCase) *RecordHandler {
	return &RecordHandler{
		log:      log,
		recordUC: recordUC,
	}
}

type CheckRequest struct {
	Sgf string `json:"sgf"`
}

type GobanRequest struct {
	Sgf  string `json:"sgf"`
	Game int    `json:"game"`
	Path []int  `json:"path"`
}

type StoreRequest struct {
	Name  string `json:"name"`
	Sgf   string `json:"sgf"`
	Level int    `json:"level"`
}

type SgfResponse struct {
	ID  string `json:"id"`
	Sgf string `json:"sgf"`
}

func (h *RecordHandler) Routes(r chi.Router) {
	r.Post("/sgf/check", h.HandleCheck)
	r.Post("/sgf/goban", h.HandleGoban)

	r.Route("/records", func(r chi.Router) {
		r.Post("/", h.HandleStore)
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)
		r.Get("/{id}/goban", h.HandleRecordGoban)
		r.Get("/{id}/sgf", h.HandleNormalize)
		r.Get("/{id}/replay", h.HandleReplay)
	})
}

func (h *RecordHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if !h.decode(w, r, &req) {
		return
	}

	summary, err := h.recordUC.Check(req.Sgf)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, summary)
}

func (h *RecordHandler) HandleGoban(w http.ResponseWriter, r *http.Request) {
	var req GobanRequest
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.recordUC.Goban(req.Sgf, req.Game, req.Path)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, view)
}

func (h *RecordHandler) HandleStore(w http.ResponseWriter, r *http.Request) {
	var req StoreRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "name is required"})
		return
	}

	rec, err := h.recordUC.Store(r.Context(), req.Name, req.Sgf, req.Level)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, rec)
}

func (h *RecordHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := utils.QueryInt(r, "page", 1)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	records, err := h.recordUC.List(r.Context(), page)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, records)
}

func (h *RecordHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.recordUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, rec)
}

// HandleRecordGoban serves ?game=N&path=0.1.0 of a stored record.
func (h *RecordHandler) HandleRecordGoban(w http.ResponseWriter, r *http.Request) {
	game, err := utils.QueryInt(r, "game", 0)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	path, err := utils.ParseNodePath(r.URL.Query().Get("path"))
	if err != nil {
		h.badRequest(w, err)
		return
	}

	view, err := h.recordUC.RecordGoban(r.Context(), chi.URLParam(r, "id"), game, path)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, view)
}

func (h *RecordHandler) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	text, err := h.recordUC.Normalize(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, SgfResponse{ID: id, Sgf: text})
}

// HandleReplay streams every main line position of a game over a websocket,
// then closes it.
func (h *RecordHandler) HandleReplay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	game, err := utils.QueryInt(r, "game", 0)
	if err != nil {
		h.badRequest(w, err)
		return
	}
	if _, err := h.recordUC.Get(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorw("websocket upgrade failed", "id", id, "error", err)
		return
	}
	defer conn.Close()

	err = h.recordUC.Replay(r.Context(), id, game, func(view *record.GobanView) error {
		return conn.WriteJSON(view)
	})

	closeCode, reason := websocket.CloseNormalClosure, "replay finished"
	if err != nil {
		h.log.Warnw("replay stopped", "id", id, "game", game, "error", err)
		closeCode, reason = websocket.CloseInternalServerErr, "replay failed"
		if httpresponse.StatusFor(err) != http.StatusInternalServerError {
			closeCode, reason = websocket.ClosePolicyViolation, closeReason(err)
		}
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(closeCode, reason))
}

func (h *RecordHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := utils.DecodeJSONRequest(r, dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.writeError(w, fmt.Errorf("%w: %v", errs.ErrInputTooLarge, err))
		return false
	}
	h.log.Infow(httpresponse.MALFORMEDJSON_errorDesc, "error", err)
	h.badRequest(w, err)
	return false
}

func (h *RecordHandler) badRequest(w http.ResponseWriter, err error) {
	httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
		httpresponse.ErrorResponse{ErrorDescription: err.Error()})
}

func (h *RecordHandler) writeError(w http.ResponseWriter, err error) {
	if httpresponse.StatusFor(err) == http.StatusInternalServerError {
		h.log.Errorw("request failed", "error", err)
	} else {
		h.log.Debugw("request rejected", "error", err)
	}
	httpresponse.WriteError(w, err)
}

const maxCloseReason = 120

// closeReason fits err into a close frame, which carries at most 123 bytes,
// without splitting a multi-byte character.
func closeReason(err error) string {
	reason := err.Error()
	if len(reason) <= maxCloseReason {
		return reason
	}
	n := maxCloseReason
	for n > 0 && !utf8.RuneStart(reason[n]) {
		n--
	}
	return reason[:n]
}
