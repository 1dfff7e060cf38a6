package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/games/rps"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

// SessionFactory builds the game session for a connecting player.
type SessionFactory func(playerName string) *rps.Session

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.rps/host_key.
	HostKeyPath string

	// DBPath is the path to the rounds and scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// NewSession creates one game session per connection.
	// If nil, sessions use the default difficulty and no provider.
	NewSession SessionFactory

	// Logger receives server events. If nil, a timestamped stderr logger is used.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.rps/rps.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server for the game.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "rps-ssh",
		})
	}

	if cfg.NewSession == nil {
		cfg.NewSession = func(name string) *rps.Session {
			return rps.NewSession(rps.WithPlayerName(name), rps.WithLogger(logger))
		}
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".rps", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
	}

	game := s.config.NewSession(sshSession.User())
	s.logger.Debug("game session created", "user", sshSession.User(), "session", game.ID())

	model := NewSessionModel(game, s.store, cfg, s.logger)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// screen is a full-screen child of SessionModel.
type screen interface {
	tea.Model
	IsQuitting() bool
	BackToMenu() bool
}

// SessionModel manages the full flow of one connection: menu -> mode -> menu.
// The game session lives as long as the connection, so scores survive trips
// through the menu.
type SessionModel struct {
	game     *rps.Session
	versus   *rps.Versus
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	menu     MenuModel
	active   screen // nil while the menu is shown
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(game *rps.Session, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return SessionModel{
		game:   game,
		versus: rps.NewVersus(game.PlayerName(), ""),
		store:  store,
		logger: logger,
		config: cfg,
		menu:   NewMenuModel(cfg).Embedded(),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	// A round can finish after its screen was left. Only the game screen
	// records it itself.
	if rm, ok := msg.(RoundMsg); ok {
		if _, playing := m.active.(Model); !playing {
			m.saveDetachedRound(rm)
			return m, nil
		}
	}

	if m.active != nil {
		return m.updateActive(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) saveDetachedRound(rm RoundMsg) {
	if rm.Err != nil || m.store == nil {
		return
	}
	if err := saveRound(m.store, rm.Result); err != nil {
		m.logger.Warn("could not save round", "error", err)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Mode {
	case ModeComputer:
		m.active = NewModel(m.game, m.store, m.config, m.logger).Embedded()
	case ModeVersus:
		m.active = NewVersusModel(m.versus, m.config).Embedded()
	case ModeScoreboard:
		m.active = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH).Embedded()
	default:
		m.menu = NewMenuModel(m.config).Embedded()
		return m, nil
	}

	return m, m.active.Init()
}

// updateActive handles updates while a mode is running.
func (m SessionModel) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.active.Update(msg)
	if next, ok := newModel.(screen); ok {
		m.active = next
	}

	if m.active.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.active.BackToMenu() {
		m.active = nil
		m.menu = NewMenuModel(m.config).Embedded()
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.active != nil {
		return m.active.View()
	}

	return m.menu.View()
}
