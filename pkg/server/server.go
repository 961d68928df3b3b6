// Package server runs the local preview server: it generates the site
// into a scratch directory, serves it over HTTP, and regenerates when
// the input tree changes.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/webgenlabs/webgen/pkg/config"
	"github.com/webgenlabs/webgen/pkg/errors"
	"github.com/webgenlabs/webgen/pkg/filesystem"
	"github.com/webgenlabs/webgen/pkg/generator"
	"github.com/webgenlabs/webgen/pkg/logging"
	"github.com/webgenlabs/webgen/pkg/types"
)

const (
	// DefaultPort is used when Options.Port is zero.
	DefaultPort = 8080

	debounceDelay   = 100 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// Options holds configuration for the preview server.
type Options struct {
	// SiteRoot is the site container directory.
	SiteRoot string

	// InputDir is the tree to generate and watch.
	InputDir string

	// OutputDir is the scratch directory served over HTTP. Empty means
	// a temporary directory that is removed on shutdown.
	OutputDir string

	Config *config.Config
	Port   int

	// Watch regenerates the site whenever the input tree changes.
	Watch bool

	// FileSystem defaults to the operating system filesystem. The HTTP
	// file server and the watcher always read the real filesystem.
	FileSystem types.FS
}

// Server serves one site and rebuilds it on change.
type Server struct {
	siteRoot  string
	inputDir  string
	outputDir string
	cfg       *config.Config
	port      int
	watch     bool
	fsys      types.FS
	logger    zerolog.Logger

	// mu serializes rebuilds triggered by the watcher
	mu sync.Mutex
}

// New validates the options and prepares a server. Serve does the rest.
func New(opts Options) (*Server, error) {
	if opts.InputDir == "" {
		return nil, errors.New(errors.ErrInvalidInput, "input directory is required")
	}

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	cfg := opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Default()
		if err != nil {
			return nil, err
		}
	}

	port := opts.Port
	if port == 0 {
		port = DefaultPort
	}

	return &Server{
		siteRoot:  opts.SiteRoot,
		inputDir:  opts.InputDir,
		outputDir: opts.OutputDir,
		cfg:       cfg,
		port:      port,
		watch:     opts.Watch,
		fsys:      fsys,
		logger:    logging.GetLogger("server"),
	}, nil
}

// Serve generates the site, then blocks serving it until the context is
// cancelled. The first generation must succeed; later failures keep the
// last good output online.
func (s *Server) Serve(ctx context.Context) error {
	if s.outputDir == "" {
		dir, err := os.MkdirTemp("", "webgen-serve-")
		if err != nil {
			return errors.Wrap(err, errors.ErrDirCreate, "cannot create scratch output directory")
		}
		defer func() { _ = os.RemoveAll(dir) }()
		s.outputDir = dir
	}

	if err := s.Build(); err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", s.port)).
		Str("input", s.inputDir).
		Bool("watch", s.watch).
		Msg("Serving site")

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, errors.ErrInternal, "preview server failed")
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Debug().Msg("Shutting down preview server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Handler returns the HTTP handler serving the generated output.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		s.requestLogger,
		middleware.Recoverer,
		middleware.Compress(5),
	)
	r.Handle("/*", http.FileServer(http.Dir(s.outputDir)))
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		s.logger.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request")
	})
}

// Build wipes the output directory and regenerates into it.
func (s *Server) Build() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fsys.RemoveAll(s.outputDir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot clear output directory %s", s.outputDir)
	}

	_, err := generator.Generate(generator.Options{
		InputDir:   s.inputDir,
		OutputDir:  s.outputDir,
		SiteRoot:   s.siteRoot,
		Config:     s.cfg,
		FileSystem: s.fsys,
	})
	return err
}

// rebuild is the watcher-facing Build: failures are logged and the
// previous output stays online.
func (s *Server) rebuild(trigger string) {
	if err := s.Build(); err != nil {
		s.logger.Error().Err(err).Str("trigger", trigger).
			Msg("Regeneration failed, serving last good output")
		return
	}
	s.logger.Info().Str("trigger", trigger).Msg("Site regenerated")
}

// watchFiles watches the input tree and schedules debounced rebuilds.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot start file watcher")
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.inputDir); err != nil {
		s.logger.Error().Err(err).Msg("Cannot watch input directory")
	}

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			base := filepath.Base(event.Name)
			if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
				continue
			}

			// New subdirectories need their own watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchDirRecursive(watcher, event.Name)
				}
			}

			if debounce != nil {
				debounce.Stop()
			}
			name := event.Name
			debounce = time.AfterFunc(debounceDelay, func() {
				s.rebuild(name)
			})

		case werr := <-watcher.Errors:
			s.logger.Error().Err(werr).Msg("Watcher error")
		}
	}
}

// watchDirRecursive adds a directory and its subdirectories to the
// watcher, skipping hidden directories the generator never reads.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
