// Package commands holds the state shared by every nbview subcommand.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redjax/nbview/internal/config"
	"github.com/redjax/nbview/internal/logging"
	workspaceservice "github.com/redjax/nbview/internal/services/workspaceService"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// AnnotationTUI marks commands that take over the terminal; they log to a
// file instead of stderr.
const AnnotationTUI = "nbview/tui"

type sessionKey struct{}

// Session is built once per invocation by the root command
type Session struct {
	Config config.Config
	Log    *zap.Logger

	ws *workspaceservice.Workspace
}

// Setup loads configuration and logging for cmd and stores the session in
// its context.
func Setup(cmd *cobra.Command, configFile string) error {
	cfg, err := config.LoadConfig(cmd.Flags(), configFile)
	if err != nil {
		return err
	}

	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, OutputPath: cfg.Log.File}
	if _, tui := cmd.Annotations[AnnotationTUI]; tui && logCfg.OutputPath == "" {
		logCfg.OutputPath = filepath.Join(filepath.Dir(cfg.DBPath), "nbview.log")
		if cfg.Log.Level != "debug" {
			logCfg.OutputPath = os.DevNull
		}
	}
	if err := logging.Init(logCfg); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	s := &Session{Config: cfg, Log: logging.L()}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, sessionKey{}, s))
	return nil
}

// FromCommand returns the session Setup stored on cmd
func FromCommand(cmd *cobra.Command) *Session {
	if cmd.Context() != nil {
		if s, ok := cmd.Context().Value(sessionKey{}).(*Session); ok {
			return s
		}
	}
	return &Session{Config: config.Default(), Log: logging.L()}
}

// Workspace opens the workspace on first use
func (s *Session) Workspace() *workspaceservice.Workspace {
	if s.ws == nil {
		s.ws = workspaceservice.Open(s.Config, s.Log)
		if err := s.ws.PersistenceError(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (changes will not be saved)\n", err)
		} else if err := s.ws.LoadError(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (autosave is off until an explicit save)\n", err)
		}
	}
	return s.ws
}

// Close autosaves pending changes and releases the workspace
func (s *Session) Close() error {
	defer logging.Sync()
	if s.ws == nil {
		return nil
	}
	err := s.ws.Commit()
	return errors.Join(err, s.ws.Close())
}
