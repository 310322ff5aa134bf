// Command agentbay 是 AgentBay 会话与上下文的命令行工具。
//
// 用法示例:
//
//	agentbay create --image linux_latest --label env=dev
//	agentbay list --label env=dev --format '$(id) $(status)'
//	agentbay exec <session-id> -- ls -l /tmp
//	agentbay context get my-context --create
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	flags "github.com/jessevdk/go-flags"
	"github.com/qiniu/dyn/text"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay"
)

type cli struct {
	APIKey   string        `long:"api-key" description:"API key, defaults to AGENTBAY_API_KEY"`
	Endpoint string        `long:"endpoint" description:"API endpoint, defaults to AGENTBAY_ENDPOINT"`
	Profile  string        `long:"profile" description:"profile name in the config file"`
	Debug    bool          `long:"debug" description:"log requests to stderr"`
	Format   string        `long:"format" description:"output template, fields are referenced as $(name)"`
	Timeout  time.Duration `long:"timeout" default:"5m" description:"overall command timeout"`

	stdout io.Writer
	stderr io.Writer
	newAPI func(*agentbay.Config) (*agentbay.Client, error)
}

func main() {
	app := &cli{stdout: os.Stdout, stderr: os.Stderr, newAPI: agentbay.NewClient}
	if err := app.run(os.Args[1:]); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(app.stdout, flagsErr.Message)
			return
		}
		fmt.Fprintln(app.stderr, "agentbay:", err)
		os.Exit(1)
	}
}

func (app *cli) run(args []string) error {
	parser := flags.NewParser(app, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "agentbay"
	commands := []struct {
		name, short string
		data        interface{}
	}{
		{"create", "Create a session", &createCommand{app: app}},
		{"list", "List sessions by labels", &listCommand{app: app}},
		{"get", "Show a session", &getCommand{app: app}},
		{"delete", "Release sessions", &deleteCommand{app: app}},
		{"exec", "Run a shell command in a session", &execCommand{app: app}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, "", c.data); err != nil {
			return err
		}
	}
	contextCmd, err := parser.AddCommand("context", "Manage contexts", "", &struct{}{})
	if err != nil {
		return err
	}
	if _, err = contextCmd.AddCommand("list", "List contexts", "", &contextListCommand{app: app}); err != nil {
		return err
	}
	if _, err = contextCmd.AddCommand("get", "Show a context", "", &contextGetCommand{app: app}); err != nil {
		return err
	}
	_, err = parser.ParseArgs(args)
	return err
}

func (app *cli) client() (*agentbay.Client, error) {
	if app.Profile != "" {
		if err := os.Setenv("AGENTBAY_PROFILE", app.Profile); err != nil {
			return nil, err
		}
	}
	cfg := &agentbay.Config{APIKey: app.APIKey, Endpoint: app.Endpoint}
	if app.Debug {
		cfg.Logger = slog.New(slog.NewTextHandler(app.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return app.newAPI(cfg)
}

func (app *cli) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), app.Timeout)
}

// print 按 --format 模板或默认模板输出一行。
func (app *cli) print(defaultFormat string, fields map[string]interface{}) error {
	format := app.Format
	if format == "" {
		format = defaultFormat
	}
	line, err := text.Subst(format, fields, text.Fmttype_Text, true)
	if err != nil {
		return fmt.Errorf("invalid format %q: %w", format, err)
	}
	_, err = fmt.Fprintln(app.stdout, line)
	return err
}

func parseLabels(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	labels := make(map[string]string, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid label %q, expected key=value", v)
		}
		labels[key] = value
	}
	return labels, nil
}

func sessionFields(s *agentbay.Session) map[string]interface{} {
	return map[string]interface{}{
		"id":          s.ID(),
		"image":       s.ImageID(),
		"resourceUrl": s.ResourceURL(),
		"vpc":         strconv.FormatBool(s.IsVpc()),
	}
}

type createCommand struct {
	Image    string   `long:"image" default:"linux_latest" description:"image id"`
	Labels   []string `long:"label" description:"label as key=value, repeatable"`
	PolicyID string   `long:"policy" description:"MCP policy id"`
	Vpc      bool     `long:"vpc" description:"create a VPC session"`

	app *cli
}

func (c *createCommand) Execute(args []string) error {
	labels, err := parseLabels(c.Labels)
	if err != nil {
		return err
	}
	client, err := c.app.client()
	if err != nil {
		return err
	}
	ctx, cancel := c.app.withTimeout()
	defer cancel()

	result, err := client.Create(ctx, &agentbay.CreateSessionParams{
		ImageID:     c.Image,
		Labels:      labels,
		McpPolicyID: c.PolicyID,
		IsVpc:       c.Vpc,
	})
	if err != nil {
		return err
	}
	fields := sessionFields(result.Session)
	fields["requestId"] = result.RequestID
	return c.app.print("$(id)", fields)
}

type listCommand struct {
	Labels []string `long:"label" description:"label filter as key=value, repeatable"`
	Page   int32    `long:"page" default:"1" description:"page number starting from 1"`
	Limit  int32    `long:"limit" default:"10" description:"page size"`

	app *cli
}

func (c *listCommand) Execute(args []string) error {
	labels, err := parseLabels(c.Labels)
	if err != nil {
		return err
	}
	client, err := c.app.client()
	if err != nil {
		return err
	}
	ctx, cancel := c.app.withTimeout()
	defer cancel()

	result, err := client.List(ctx, labels, c.Page, c.Limit)
	if err != nil {
		return err
	}
	for _, s := range result.Sessions {
		if err = c.app.print("$(id)\t$(status)", map[string]interface{}{"id": s.SessionID, "status": s.Status}); err != nil {
			return err
		}
	}
	return nil
}

type getCommand struct {
	Args struct {
		SessionID string `positional-arg-name:"session-id"`
	} `positional-args:"yes" required:"yes"`

	app *cli
}

func (c *getCommand) Execute(args []string) error {
	client, err := c.app.client()
	if err != nil {
		return err
	}
	ctx, cancel := c.app.withTimeout()
	defer cancel()

	result, err := client.Get(ctx, c.Args.SessionID)
	if err != nil {
		return err
	}
	return c.app.print("$(id)\t$(resourceUrl)", sessionFields(result.Session))
}

type deleteCommand struct {
	Sync bool `long:"sync" description:"upload mounted contexts before release"`
	Args struct {
		SessionIDs []string `positional-arg-name:"session-id" required:"1"`
	} `positional-args:"yes" required:"yes"`

	app *cli
}

func (c *deleteCommand) Execute(args []string) error {
	client, err := c.app.client()
	if err != nil {
		return err
	}
	ctx, cancel := c.app.withTimeout()
	defer cancel()

	sessions := make([]*agentbay.Session, 0, len(c.Args.SessionIDs))
	for _, id := range c.Args.SessionIDs {
		sessions = append(sessions, client.NewSession(id))
	}
	results, err := client.DeleteSessions(ctx, sessions, c.Sync)
	for _, r := range results {
		if r == nil || r.Err != nil {
			continue
		}
		if perr := c.app.print("$(id)\treleased", map[string]interface{}{"id": r.SessionID, "requestId": r.RequestID}); perr != nil {
			return perr
		}
	}
	return err
}

type execCommand struct {
	CommandTimeout time.Duration `long:"command-timeout" default:"1s" description:"timeout passed to the shell tool"`
	Args           struct {
		SessionID string   `positional-arg-name:"session-id"`
		Command   []string `positional-arg-name:"command" required:"1"`
	} `positional-args:"yes" required:"yes"`

	app *cli
}

func (c *execCommand) Execute(args []string) error {
	client, err := c.app.client()
	if err != nil {
		return err
	}
	ctx, cancel := c.app.withTimeout()
	defer cancel()

	command := strings.Join(append(c.Args.Command, args...), " ")
	result, err := client.NewSession(c.Args.SessionID).Command().ExecuteCommand(ctx, command, c.CommandTimeout)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(c.app.stdout, result.Output)
	return err
}

type contextListCommand struct {
	Limit     int32  `long:"limit" default:"10" description:"page size"`
	NextToken string `long:"next-token" description:"token returned by the previous page"`

	app *cli
}

func (c *contextListCommand) Execute(args []string) error {
	client, err := c.app.client()
	if err != nil {
		return err
	}
	ctx, cancel := c.app.withTimeout()
	defer cancel()

	result, err := client.Context().List(ctx, &agentbay.ContextListParams{MaxResults: c.Limit, NextToken: c.NextToken})
	if err != nil {
		return err
	}
	for _, item := range result.Contexts {
		if err = c.app.print("$(id)\t$(name)\t$(state)", contextFields(item)); err != nil {
			return err
		}
	}
	if result.NextToken != "" {
		fmt.Fprintln(c.app.stderr, "next token:", result.NextToken)
	}
	return nil
}

type contextGetCommand struct {
	Create bool `long:"create" description:"create the context when it does not exist"`
	ByID   bool `long:"id" description:"treat the argument as a context id"`
	Args   struct {
		Name string `positional-arg-name:"name"`
	} `positional-args:"yes" required:"yes"`

	app *cli
}

func (c *contextGetCommand) Execute(args []string) error {
	client, err := c.app.client()
	if err != nil {
		return err
	}
	ctx, cancel := c.app.withTimeout()
	defer cancel()

	var result *agentbay.ContextResult
	if c.ByID {
		result, err = client.Context().GetByID(ctx, c.Args.Name)
	} else {
		result, err = client.Context().Get(ctx, c.Args.Name, c.Create)
	}
	if err != nil {
		return err
	}
	return c.app.print("$(id)\t$(name)\t$(state)", contextFields(result.Context))
}

func contextFields(c *agentbay.Context) map[string]interface{} {
	return map[string]interface{}{
		"id":         c.ID,
		"name":       c.Name,
		"state":      c.State,
		"createdAt":  c.CreatedAt,
		"lastUsedAt": c.LastUsedAt,
		"osType":     c.OsType,
	}
}
