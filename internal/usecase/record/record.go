package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sgf_engine/internal/domain/record"
	"sgf_engine/internal/domain/sgf"
	errs "sgf_engine/internal/errors"
	"sgf_engine/internal/observability"
	"sgf_engine/internal/sgf/encoder"
	"sgf_engine/internal/sgf/interpreter"
	"sgf_engine/internal/sgf/reader"
)

type RecordStore interface {
	Save(ctx context.Context, rec *record.Record) error
	Get(ctx context.Context, id string) (*record.Record, error)
	List(ctx context.Context, page int) (*record.RecordPage, error)
}

// GobanCache misses with errs.ErrCacheMiss.
type GobanCache interface {
	GetGoban(ctx context.Context, key string) (*record.GobanView, error)
	SetGoban(ctx context.Context, key string, view *record.GobanView) error
}

type FileSource interface {
	Collect(root string) ([]record.SourceFile, error)
	Load(path string) (record.SourceFile, error)
}

type RecordUseCase struct {
	store    RecordStore
	cache    GobanCache
	files    FileSource
	log      *zap.SugaredLogger
	maxBytes int
	now      func() time.Time
}

// NewRecordUseCase wires the use case. store, cache and files may be nil
// for callers that only check or interpret raw text.
func NewRecordUseCase(store RecordStore, cache GobanCache, files FileSource, log *zap.SugaredLogger, maxBytes int) *RecordUseCase {
	return &RecordUseCase{
		store:    store,
		cache:    cache,
		files:    files,
		log:      log,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Read runs the reader over text and records how it went.
func (u *RecordUseCase) Read(text string, source string) (*sgf.GameCollection, error) {
	if u.maxBytes > 0 && len(text) > u.maxBytes {
		observability.ReadResults.WithLabelValues("too_large").Inc()
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", errs.ErrInputTooLarge, len(text), u.maxBytes)
	}

	start := time.Now()
	collection, err := reader.Read(text)
	observability.ReadDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())

	result := "ok"
	if kind, ok := errs.KindOf(err); ok {
		result = kind.String()
	}
	observability.ReadResults.WithLabelValues(result).Inc()

	return collection, err
}

func (u *RecordUseCase) Check(text string) (*record.Summary, error) {
	collection, err := u.Read(text, "check")
	if err != nil {
		return nil, err
	}
	return Summarize(collection), nil
}

// Goban interprets one game of text and returns the position at path.
func (u *RecordUseCase) Goban(text string, game int, path []int) (*record.GobanView, error) {
	collection, err := u.Read(text, "goban")
	if err != nil {
		return nil, err
	}
	return gobanAt(collection, game, path)
}

func (u *RecordUseCase) Store(ctx context.Context, name string, text string, level int) (*record.Record, error) {
	collection, err := u.Read(text, "store")
	if err != nil {
		return nil, err
	}

	nodes := 0
	for _, game := range collection.Games {
		nodes += game.Len()
	}

	rec := &record.Record{
		ID:        uuid.New().String(),
		Name:      name,
		Level:     level,
		Sgf:       text,
		Games:     len(collection.Games),
		Nodes:     nodes,
		CreatedAt: u.now().UTC(),
	}
	if err := u.store.Save(ctx, rec); err != nil {
		return nil, err
	}

	u.log.Infow("record stored", "id", rec.ID, "name", rec.Name, "games", rec.Games)
	return rec, nil
}

func (u *RecordUseCase) Get(ctx context.Context, id string) (*record.Record, error) {
	return u.store.Get(ctx, id)
}

func (u *RecordUseCase) List(ctx context.Context, page int) (*record.RecordPage, error) {
	if page < 1 {
		page = 1
	}
	return u.store.List(ctx, page)
}

// RecordGoban serves the position of a stored record, from the cache when
// it holds it.
func (u *RecordUseCase) RecordGoban(ctx context.Context, id string, game int, path []int) (*record.GobanView, error) {
	key := CacheKey(id, game, path)

	if u.cache != nil {
		view, err := u.cache.GetGoban(ctx, key)
		switch {
		case err == nil:
			observability.CacheLookups.WithLabelValues("hit").Inc()
			return view, nil
		case errors.Is(err, errs.ErrCacheMiss):
			observability.CacheLookups.WithLabelValues("miss").Inc()
		default:
			observability.CacheLookups.WithLabelValues("error").Inc()
			u.log.Warnw("goban cache lookup failed", "key", key, "error", err)
		}
	}

	rec, err := u.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	collection, err := u.Read(rec.Sgf, "record")
	if err != nil {
		return nil, err
	}
	view, err := gobanAt(collection, game, path)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.SetGoban(ctx, key, view); err != nil {
			u.log.Warnw("goban cache store failed", "key", key, "error", err)
		}
	}
	return view, nil
}

// Normalize re-serializes a stored record.
func (u *RecordUseCase) Normalize(ctx context.Context, id string) (string, error) {
	rec, err := u.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	collection, err := u.Read(rec.Sgf, "record")
	if err != nil {
		return "", err
	}
	return encoder.Encode(collection), nil
}

// Replay emits the position of every main line node of one game, root
// first. It stops at the first emit error or when ctx is done.
func (u *RecordUseCase) Replay(ctx context.Context, id string, game int, emit func(*record.GobanView) error) error {
	rec, err := u.store.Get(ctx, id)
	if err != nil {
		return err
	}
	collection, err := u.Read(rec.Sgf, "record")
	if err != nil {
		return err
	}

	g, ok := collection.Game(game)
	if !ok {
		return fmt.Errorf("%w: %d", errs.ErrGameIndex, game)
	}
	it, err := interpret(g)
	if err != nil {
		return err
	}

	for _, node := range g.MainLine() {
		if err := ctx.Err(); err != nil {
			return err
		}
		view, err := gobanView(it, game, node)
		if err != nil {
			return err
		}
		if err := emit(view); err != nil {
			return err
		}
	}
	return nil
}

// Import stores every SGF file under root. Files that are not valid SGF
// are logged and skipped.
func (u *RecordUseCase) Import(ctx context.Context, root string) (int, error) {
	files, err := u.files.Collect(root)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, file := range files {
		if _, err := u.storeFile(ctx, file); err != nil {
			if isInputError(err) {
				u.log.Warnw("skipping invalid sgf file", "path", file.Path, "error", err)
				continue
			}
			return imported, fmt.Errorf("import %s: %w", file.Path, err)
		}
		imported++
	}

	u.log.Infof("imported %d of %d files from %s", imported, len(files), root)
	return imported, nil
}

func (u *RecordUseCase) ImportFile(ctx context.Context, path string) (*record.Record, error) {
	file, err := u.files.Load(path)
	if err != nil {
		return nil, err
	}
	return u.storeFile(ctx, file)
}

func (u *RecordUseCase) storeFile(ctx context.Context, file record.SourceFile) (*record.Record, error) {
	rec, err := u.Store(ctx, file.Name, file.Text, file.Level)
	if err != nil {
		return nil, err
	}
	observability.ImportedRecords.Inc()
	return rec, nil
}

func isInputError(err error) bool {
	if errors.Is(err, errs.ErrInputTooLarge) {
		return true
	}
	kind, ok := errs.KindOf(err)
	return ok && (kind == errs.KindSyntax || kind == errs.KindGame)
}

func interpret(game *sgf.Game) (*interpreter.Interpreter, error) {
	start := time.Now()
	defer func() {
		observability.InterpretDuration.Observe(time.Since(start).Seconds())
	}()
	return interpreter.New(game)
}
