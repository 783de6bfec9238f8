package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mindarch/mindarch/internal/ai"
	"github.com/mindarch/mindarch/internal/app"
	"github.com/mindarch/mindarch/internal/config"
	"github.com/mindarch/mindarch/internal/logger"
	"github.com/mindarch/mindarch/internal/session"
	"github.com/mindarch/mindarch/internal/store"
)

// newLogger falls back to a no-op logger rather than failing the command
// over a logging config problem.
func newLogger() *logger.Logger {
	log, err := logger.New(config.LogMode())
	if err != nil {
		return logger.NewNop()
	}
	return log
}

func sessionStorage() *session.Storage {
	return session.NewStorage(config.DataDir())
}

// openStore picks the backend. A cached login wins; otherwise a configured
// server URL without a login is an error, and with neither the plan lives
// in a local file.
func openStore() (store.Store, error) {
	sess, err := sessionStorage().Load()
	if err == nil {
		return store.NewRemote(sess.ServerURL, sess.Token), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read cached session: %w", err)
	}

	if config.ServerURL() != "" {
		return nil, fmt.Errorf("server %s is configured but you are not logged in; run: mindarch login", config.ServerURL())
	}
	return store.NewLocal(config.DataDir()), nil
}

// openGenerator routes generation through the backend when logged in, and
// calls the generation service directly in local mode.
func openGenerator(st store.Store, log *logger.Logger) (ai.Generator, error) {
	if remote, ok := st.(*store.Remote); ok {
		return remote, nil
	}
	return ai.New(log)
}

// buildApp wires the session object most commands need. Commands that only
// read the plan pass needGenerator=false so a missing API key does not get
// in the way.
func buildApp(needGenerator bool) (*app.App, error) {
	log := newLogger()

	st, err := openStore()
	if err != nil {
		return nil, err
	}

	var generator ai.Generator
	if needGenerator {
		generator, err = openGenerator(st, log)
		if err != nil {
			return nil, err
		}
	}
	return app.New(log, st, generator), nil
}

// BuildTUIApp wires the application for the interactive UI. Unlike the
// strict command path, a missing API key does not block startup; the
// generator form reports it if the user actually generates.
func BuildTUIApp() (*app.App, error) {
	log := newLogger()

	st, err := openStore()
	if err != nil {
		return nil, err
	}

	generator, err := openGenerator(st, log)
	if err != nil {
		log.Warn("generation unavailable", "error", err)
		generator = nil
	}
	return app.New(log, st, generator), nil
}
