package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sgf_engine/internal/adapters"
	"sgf_engine/internal/bootstrap"
	"sgf_engine/internal/domain/record"
	"sgf_engine/internal/sgf/encoder"
	"sgf_engine/internal/sgf/reader"
	recorduc "sgf_engine/internal/usecase/record"
	"sgf_engine/internal/utils"
	"sgf_engine/internal/watcher"
)

// readInput reads the named file, or stdin for "-".
func readInput(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(name)
	return string(data), err
}

func offlineUseCase(cfgPath string) (*recorduc.RecordUseCase, *zap.SugaredLogger, error) {
	cfg, logger, err := setup(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	return recorduc.NewRecordUseCase(nil, nil, nil, logger, cfg.MaxSgfBytes), logger, nil
}

func newCheckCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file|->",
		Short: "Validate an SGF file and print its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _, err := offlineUseCase(*cfgPath)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			summary, err := uc.Check(text)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}

func newGobanCmd(cfgPath *string) *cobra.Command {
	var (
		game int
		path string
	)
	cmd := &cobra.Command{
		Use:   "goban <file|->",
		Short: "Print the board at one node of an SGF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _, err := offlineUseCase(*cfgPath)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			nodePath, err := utils.ParseNodePath(path)
			if err != nil {
				return err
			}

			view, err := uc.Goban(text, game, nodePath)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), renderGoban(view))
			return err
		},
	}
	cmd.Flags().IntVarP(&game, "game", "g", 0, "Game index in the collection")
	cmd.Flags().StringVarP(&path, "path", "p", "", "Dotted child indexes from the root, e.g. 0.0.1")
	return cmd
}

// renderGoban draws the board with X for black and O for white, row 0 on
// top.
func renderGoban(view *record.GobanView) string {
	grid := make([][]byte, view.Size)
	for row := range grid {
		grid[row] = []byte(strings.Repeat(".", view.Size))
	}
	for _, s := range view.Stones {
		mark := byte('O')
		if s.Color == "black" {
			mark = 'X'
		}
		grid[s.Row][s.Column] = mark
	}

	var b strings.Builder
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	if view.MoveNumber != nil {
		fmt.Fprintf(&b, "move %d", *view.MoveNumber)
		if view.Current != nil {
			fmt.Fprintf(&b, " %s %s", view.Current.Color, view.Current.Point)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "captured black %d, white %d\n", view.CapturedBlack, view.CapturedWhite)
	return b.String()
}

func newNormalizeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <file|->",
		Short: "Print an SGF file in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := setup(*cfgPath); err != nil {
				return err
			}
			text, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			collection, err := reader.Read(text)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), encoder.Encode(collection))
			return err
		},
	}
}

// storeUseCase connects to MongoDB only; import and watch never read
// positions, so they need no cache.
type storeSession struct {
	uc     *recorduc.RecordUseCase
	logger *zap.SugaredLogger
	cfg    *bootstrap.Config
	close  func()
}

func storeUseCase(ctx context.Context, cfgPath string) (*storeSession, error) {
	cfg, logger, err := setup(cfgPath)
	if err != nil {
		return nil, err
	}

	mongoAdapter := adapters.NewAdapterMongo(cfg, logger)
	if err := mongoAdapter.Init(ctx); err != nil {
		return nil, fmt.Errorf("init MongoDB: %w", err)
	}
	closeFn := func() {
		_ = mongoAdapter.Close(context.Background())
		_ = logger.Sync()
	}

	uc, err := newRecordUseCase(cfg, logger, &dataBaseAdapters{mongoAdapter: mongoAdapter})
	if err != nil {
		closeFn()
		return nil, err
	}
	return &storeSession{uc: uc, logger: logger, cfg: cfg, close: closeFn}, nil
}

func newImportCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Store every SGF file under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := storeUseCase(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			defer session.close()

			n, err := session.uc.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d records\n", n)
			return err
		},
	}
}

func newWatchCmd(cfgPath *string) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Store SGF files as they appear under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			session, err := storeUseCase(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer session.close()
			logger := session.logger
			go handleShutdown(cancel, logger)

			w, err := watcher.New(logger, debounce, session.cfg.ImportPattern, func(paths []string) {
				for _, path := range paths {
					rec, err := session.uc.ImportFile(ctx, path)
					if err != nil {
						logger.Warnw("import failed", "path", path, "error", err)
						continue
					}
					logger.Infow("imported", "path", path, "id", rec.ID)
				}
			})
			if err != nil {
				return err
			}
			return w.Run(ctx, args[0])
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Quiet period before changed files are imported")
	return cmd
}
