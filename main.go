package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/mux"

	"ekkles/internal/database"
	"ekkles/internal/handlers"
	"ekkles/internal/logging"
	"ekkles/internal/memory"
	"ekkles/internal/metrics"
	"ekkles/internal/middleware"
	"ekkles/internal/playlist"
	"ekkles/internal/scripture"
	"ekkles/internal/slide"
	"ekkles/internal/song"
	"ekkles/internal/startup"
	"ekkles/internal/surface"
	"ekkles/internal/tui"
)

func main() {
	startTime := time.Now()

	memory.ConfigureLimit(os.Getenv)

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	playlistID, err := playlistArg(os.Args[1:], config.PlaylistID)
	if err != nil {
		startup.LogFatal("%v", err)
	}

	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, runtime.Version())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Startup failures must reach the terminal. The log moves to a file
	// only once the controller starts.
	sess, err := prepare(ctx, config, playlistID)
	if err != nil {
		startup.LogFatal("%v", err)
	}
	defer sess.db.Close()

	collector := metrics.NewCollector(sess.db, config.DatabasePath, time.Minute)
	collector.Start()

	sync := sess.sync
	presenterCtx, stopPresenter := context.WithCancel(ctx)
	defer stopPresenter()
	presenterDone := startPresenter(presenterCtx, sync, config)

	h := handlers.New(sess.db, sess.resolver, sync)
	router := setupRouter(h, config.MetricsEnabled)
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	if config.MetricsEnabled {
		router.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))
	}
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(router)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("HTTP server error: %v", err)
		}
	}()

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})

	// The controller owns the terminal from here on.
	logging.Info("Logging to %s", config.LogFile)
	logFile, err := logging.ToFile(config.LogFile)
	if err != nil {
		startup.LogFatal("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	program := tea.NewProgram(
		tui.NewModel(sync, sess.title, sess.reload),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, runErr := program.Run()

	reason := "operator quit"
	switch {
	case ctx.Err() != nil:
		reason = "signal"
	case runErr != nil:
		reason = "controller error"
		logging.Error("Controller error: %v", runErr)
	}

	shutdown(reason, srv, collector, stopPresenter, presenterDone)
}

// playlistArg returns the playlist id from the first argument, falling
// back to the configured one.
func playlistArg(args []string, configured int64) (int64, error) {
	if len(args) == 0 {
		if configured > 0 {
			return configured, nil
		}
		return 0, errors.New("usage: ekkles <playlist-id> (or set PLAYLIST_ID)")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid playlist id %q", args[0])
	}
	return id, nil
}

// session is the resolved playlist and the library it came from.
type session struct {
	db       *database.Database
	resolver *playlist.Resolver
	sync     *surface.Synchronizer
	id       int64
	title    string
}

// prepare opens the library and resolves the playlist to present. On error
// nothing is left open.
func prepare(ctx context.Context, config *startup.Config, playlistID int64) (*session, error) {
	dbStart := time.Now()
	db, err := database.New(ctx, config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	startup.LogDatabaseInit(time.Since(dbStart))

	sess := &session{db: db, resolver: newResolver(db, config), sync: surface.New(), id: playlistID}

	title, slides, err := resolvePlaylist(ctx, db, sess.resolver, playlistID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare playlist %d: %w", playlistID, err)
	}
	if _, ok := sess.sync.Load(slides); !ok {
		db.Close()
		return nil, errors.New("failed to load presentation")
	}
	sess.title = title
	return sess, nil
}

// reload re-resolves the session's playlist for the controller.
func (s *session) reload(ctx context.Context) ([]slide.Slide, error) {
	_, slides, err := resolvePlaylist(ctx, s.db, s.resolver, s.id)
	return slides, err
}

func newResolver(db *database.Database, config *startup.Config) *playlist.Resolver {
	var split song.SplitPolicy = song.WholePart{}
	if config.LinesPerSlide > 0 {
		split = song.LinesPerSlide(config.LinesPerSlide)
	}

	opts := []playlist.Option{
		playlist.WithExpander(song.NewExpander(song.WithSplitPolicy(split))),
		playlist.WithWorkers(config.ResolveWorkers),
	}
	if config.SkipFailedParts {
		opts = append(opts, playlist.WithSkipFailedParts())
	}

	return playlist.NewResolver(db,
		scripture.NewResolver(db, scripture.WithVersesPerSlide(config.VersesPerSlide)),
		opts...,
	)
}

// resolvePlaylist loads and resolves the playlist to present. Empty
// playlists and playlists that resolve to no slides are refused.
func resolvePlaylist(ctx context.Context, db *database.Database, resolver *playlist.Resolver, id int64) (string, []slide.Slide, error) {
	start := time.Now()

	pl, err := db.GetPlaylist(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if pl.Len() == 0 {
		return "", nil, fmt.Errorf("playlist %q: %w", pl.Name, playlist.ErrEmpty)
	}

	result, err := resolver.Resolve(ctx, pl)
	if err != nil {
		return "", nil, err
	}
	if len(result.Slides) == 0 {
		return "", nil, fmt.Errorf("playlist %q resolved to no slides (%d part(s) skipped)", pl.Name, len(result.Diagnostics))
	}

	startup.LogPlaylistResolved(pl.Name, pl.Len(), len(result.Slides), len(result.Diagnostics), time.Since(start))
	return pl.Name, result.Slides, nil
}

// startPresenter runs the presenter surface when an output is configured.
// The returned channel is closed when the render loop has stopped.
func startPresenter(ctx context.Context, sync *surface.Synchronizer, config *startup.Config) <-chan struct{} {
	done := make(chan struct{})
	startup.LogPresenterInit(config.PresenterOutput, config.FrameInterval)

	if config.PresenterOutput == "" {
		close(done)
		return done
	}

	out, err := os.OpenFile(config.PresenterOutput, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		logging.Error("Presenter disabled: failed to open %s: %v", config.PresenterOutput, err)
		close(done)
		return done
	}

	presenter := tui.NewPresenter(sync, out, config.FrameInterval)
	go func() {
		defer close(done)
		defer out.Close()
		if err := presenter.Run(ctx); err != nil {
			logging.Error("Presenter stopped: %v", err)
		}
	}()
	return done
}

func setupRouter(h *handlers.Handlers, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")
	if metricsEnabled {
		r.Handle("/metrics", h.MetricsHandler()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/playlists", h.ListPlaylists).Methods("GET")
	api.HandleFunc("/playlists/{id:[0-9]+}", h.GetPlaylist).Methods("GET")
	api.HandleFunc("/playlists/{id:[0-9]+}/slides", h.GetPlaylistSlides).Methods("GET")
	api.HandleFunc("/songs", h.ListSongs).Methods("GET")
	api.HandleFunc("/songs/{id:[0-9]+}", h.GetSong).Methods("GET")
	api.HandleFunc("/translations", h.ListTranslations).Methods("GET")
	api.HandleFunc("/presentation", h.GetPresentation).Methods("GET")

	return r
}

func shutdown(reason string, srv *http.Server, collector *metrics.Collector, stopPresenter context.CancelFunc, presenterDone <-chan struct{}) {
	startup.LogShutdownInitiated(reason)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	startup.LogShutdownStep("Stopping presenter")
	stopPresenter()
	select {
	case <-presenterDone:
		startup.LogShutdownStepComplete("Presenter stopped")
	case <-ctx.Done():
		logging.Warn("Presenter did not stop in time")
	}

	startup.LogShutdownStep("Stopping metrics collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Metrics collector stopped")

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
