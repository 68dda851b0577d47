package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/lumina/pkg/commands/options"
	"tableflip.dev/lumina/pkg/config"
	"tableflip.dev/lumina/pkg/draft"
	"tableflip.dev/lumina/pkg/draft/gemini"
	"tableflip.dev/lumina/pkg/logging"
	"tableflip.dev/lumina/pkg/store"
)

var (
	output    = &options.OutputOptions{}
	ephemeral bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "lumina",
		Short: base.Wrap80("A personal calendar on the command line: tasks on days, month and week grids, and tasks from plain sentences."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false,
		"Keep tasks in memory for this run only instead of on disk.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addToggle(topLevel)
	addDelete(topLevel)
	addGet(topLevel)
	addCalendar(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addTheme(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// env is what a command needs to reach the task store.
type env struct {
	cfg   *config.Config
	log   *logging.Logger
	disk  *store.Disk
	tasks *store.Tasks
}

// loadEnv reads configuration and opens the task store, on disk unless
// --ephemeral was given.
func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: log}

	var kv store.KV
	if ephemeral {
		kv = store.NewMemory()
	} else {
		e.disk, err = store.Load(cfg)
		if err != nil {
			return nil, err
		}
		kv = e.disk
	}
	e.tasks = store.Open(kv, log)
	return e, nil
}

// adapter builds the natural language adapter. Without an API key it
// still returns an adapter, one that reports it is unconfigured.
func (e *env) adapter(ctx context.Context) *draft.Adapter {
	p, err := gemini.New(ctx, e.cfg.Gemini)
	if err != nil {
		if !errors.Is(err, draft.ErrUnconfigured) {
			e.log.WithError(err).Warn("gemini parser unavailable")
		}
		return draft.NewAdapter(nil, e.tasks, e.log)
	}
	return draft.NewAdapter(p, e.tasks, e.log)
}

func (e *env) Close() {
	_ = e.log.Close()
}

// watcher is the disk store when there is one. In-memory stores have no
// other writers to watch.
func (e *env) watcher() watcher {
	if e.disk == nil {
		return nil
	}
	return e.disk
}

type watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}
