package repository

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"go.uber.org/zap"

	"sgf_engine/internal/domain/record"
)

var chapterDir = regexp.MustCompile(`(?i)^Chapter (\d+)$`)

// FileStorage finds SGF files on disk. A file under a "Chapter N"
// directory gets level N.
type FileStorage struct {
	log     *zap.SugaredLogger
	pattern glob.Glob
}

func NewFileStorage(log *zap.SugaredLogger, pattern string) (*FileStorage, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile import pattern %q: %w", pattern, err)
	}
	return &FileStorage{
		log:     log,
		pattern: g,
	}, nil
}

// Match reports whether the base name of path is an importable file.
func (f *FileStorage) Match(path string) bool {
	return f.pattern.Match(filepath.Base(path))
}

func (f *FileStorage) Collect(root string) ([]record.SourceFile, error) {
	var files []record.SourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !f.Match(path) {
			return nil
		}

		file, err := f.Load(path)
		if err != nil {
			return err
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

func (f *FileStorage) Load(path string) (record.SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return record.SourceFile{}, err
	}

	level, ok := ExtractChapterIndex(path)
	if !ok {
		f.log.Debugw("no chapter directory in path", "path", path)
	}

	filename := filepath.Base(path)
	return record.SourceFile{
		Path:  path,
		Name:  strings.TrimSuffix(filename, filepath.Ext(filename)),
		Level: level,
		Text:  string(data),
	}, nil
}

// ExtractChapterIndex returns N for the first "Chapter N" directory of path.
func ExtractChapterIndex(path string) (int, bool) {
	for _, dir := range strings.Split(filepath.ToSlash(path), "/") {
		if match := chapterDir.FindStringSubmatch(dir); len(match) == 2 {
			index, err := strconv.Atoi(match[1])
			if err != nil {
				return 0, false
			}
			return index, true
		}
	}
	return 0, false
}
