package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ezgierrdogan/planning-forever-clean/services/app/adapters/notify"
	"github.com/ezgierrdogan/planning-forever-clean/services/app/adapters/session"
	"github.com/ezgierrdogan/planning-forever-clean/services/app/adapters/storeclient"
	"github.com/ezgierrdogan/planning-forever-clean/services/app/config"
	"github.com/ezgierrdogan/planning-forever-clean/services/app/core"
	"github.com/ezgierrdogan/planning-forever-clean/services/app/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// appEnv wires the synchronizer, scheduler and adapters for one command run.
type appEnv struct {
	cfg      config.Config
	log      *slog.Logger
	client   *storeclient.Client
	sessions *session.FileStore
	events   *telemetry.MemoryRecorder
	notifier *notify.Local
	sched    *core.Scheduler
	sync     *core.Synchronizer
}

func newRootCmd() *cobra.Command {
	var configPath string
	env := &appEnv{}

	root := &cobra.Command{
		Use:           "planner",
		Short:         "Task planner with local due-date reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			env.build(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "configuration file")

	root.AddCommand(
		newRegisterCmd(env),
		newLoginCmd(env),
		newLogoutCmd(env),
		newWhoamiCmd(env),
		newListCmd(env),
		newAddCmd(env),
		newShowCmd(env),
		newEditCmd(env),
		newDoneCmd(env),
		newUndoneCmd(env),
		newRemoveCmd(env),
		newWatchCmd(env),
	)
	return root
}

func (env *appEnv) build(configPath string) {
	env.cfg = config.MustLoad(configPath)
	env.log = mustMakeLogger(env.cfg.LogLevel)

	clock := core.RealClock{}
	env.client = storeclient.New(env.cfg.StoreAddress, env.cfg.HTTPTimeout, env.log)
	env.sessions = session.NewFileStore(env.cfg.SessionFile)
	env.events = telemetry.NewMemoryRecorder()
	env.notifier = notify.NewLocal(env.log, clock, func(p core.ReminderPayload) {
		fmt.Printf("\n[reminder] %s: %s\n", p.Title, p.Body)
	})
	env.sched = core.NewScheduler(env.log, env.notifier, clock, env.events)
	env.sync = core.NewSynchronizer(env.log, env.client, env.sched, clock)
}

// requireSession loads the saved login, checks expiry and installs the token.
func (env *appEnv) requireSession() (session.Session, error) {
	s, err := env.sessions.Load()
	if err != nil {
		return session.Session{}, fmt.Errorf("log in first: %w", err)
	}
	if s.Expired(time.Now()) {
		return session.Session{}, fmt.Errorf("session expired, log in again")
	}
	env.client.SetToken(s.Token)
	if env.cfg.RemindersEnabled {
		env.sched.EnsurePermission(context.Background())
	}
	return s, nil
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
