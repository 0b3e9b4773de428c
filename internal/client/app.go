package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-forum/internal/adapter"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/models"
)

type command struct {
	usage   string
	minArgs int
	maxArgs int
	run     func(ctx context.Context, args []string) (any, error)
}

type App struct {
	server   adapter.ServerAdapter
	out      io.Writer
	commands map[string]command
	logger   *logger.Logger
}

var _ Client = (*App)(nil)

func NewApp(server adapter.ServerAdapter, out io.Writer, logger *logger.Logger) *App {
	a := &App{server: server, out: out, logger: logger}
	a.commands = map[string]command{
		"version":        {usage: "version", run: a.version},
		"register":       {usage: "register <username> <password> [email]", minArgs: 2, maxArgs: 3, run: a.register},
		"login":          {usage: "login <username> <password>", minArgs: 2, maxArgs: 2, run: a.login},
		"logout":         {usage: "logout", run: a.logout},
		"user":           {usage: "user <id|username>", minArgs: 1, maxArgs: 1, run: a.user},
		"threads":        {usage: "threads [tag]", maxArgs: 1, run: a.threads},
		"thread":         {usage: "thread <id>", minArgs: 1, maxArgs: 1, run: a.thread},
		"post":           {usage: "post <title> <content> [tag]", minArgs: 2, maxArgs: 3, run: a.post},
		"delete-thread":  {usage: "delete-thread <id>", minArgs: 1, maxArgs: 1, run: a.deleteThread},
		"comments":       {usage: "comments <thread-id>", minArgs: 1, maxArgs: 1, run: a.comments},
		"comment":        {usage: "comment <thread-id> <content>", minArgs: 2, maxArgs: 2, run: a.comment},
		"delete-comment": {usage: "delete-comment <id>", minArgs: 1, maxArgs: 1, run: a.deleteComment},
	}
	return a
}

// Run executes args[0] with the remaining arguments. A nil result prints
// nothing; anything else is printed as indented JSON.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given\n%s", ErrUsage, a.Usage())
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %q\n%s", ErrUnknownCommand, args[0], a.Usage())
	}

	rest := args[1:]
	if len(rest) < cmd.minArgs || len(rest) > cmd.maxArgs {
		return fmt.Errorf("%w: usage: %s", ErrUsage, cmd.usage)
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	result, err := cmd.run(ctx, rest)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if result == nil {
		return nil
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// Usage lists every command, sorted by name.
func (a *App) Usage() string {
	lines := make([]string, 0, len(a.commands))
	for _, cmd := range a.commands {
		lines = append(lines, "  "+cmd.usage)
	}
	sort.Strings(lines)
	return "commands:\n" + strings.Join(lines, "\n")
}

func (a *App) version(ctx context.Context, _ []string) (any, error) {
	v, err := a.server.GetAppVersion(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{"version": v}, nil
}

func (a *App) register(ctx context.Context, args []string) (any, error) {
	user := models.NewUser{Username: args[0], Password: args[1]}
	if len(args) == 3 {
		user.Email = args[2]
	}
	return a.server.Register(ctx, user)
}

func (a *App) login(ctx context.Context, args []string) (any, error) {
	return a.server.Login(ctx, models.LoginRequest{Username: args[0], Password: args[1]})
}

func (a *App) logout(ctx context.Context, _ []string) (any, error) {
	return nil, a.server.Logout(ctx)
}

func (a *App) user(ctx context.Context, args []string) (any, error) {
	return a.server.GetUser(ctx, args[0])
}

func (a *App) threads(ctx context.Context, args []string) (any, error) {
	var tag string
	if len(args) == 1 {
		tag = args[0]
	}
	return a.server.ListThreads(ctx, tag)
}

func (a *App) thread(ctx context.Context, args []string) (any, error) {
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	return a.server.GetThread(ctx, id)
}

func (a *App) post(ctx context.Context, args []string) (any, error) {
	thread := models.NewThread{Title: args[0], Content: args[1]}
	if len(args) == 3 {
		thread.Tag = args[2]
	}
	return a.server.CreateThread(ctx, thread)
}

func (a *App) deleteThread(ctx context.Context, args []string) (any, error) {
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	return nil, a.server.DeleteThread(ctx, id)
}

func (a *App) comments(ctx context.Context, args []string) (any, error) {
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	return a.server.ListComments(ctx, id)
}

func (a *App) comment(ctx context.Context, args []string) (any, error) {
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	return a.server.CreateComment(ctx, id, models.NewComment{Content: args[1]})
}

func (a *App) deleteComment(ctx context.Context, args []string) (any, error) {
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	return nil, a.server.DeleteComment(ctx, id)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
