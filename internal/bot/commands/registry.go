package commands

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bradykim7/mamabot/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

const commandTimeout = 15 * time.Second

// Responder sends replies back to the channel a command came from
type Responder interface {
	Embed(channelID string, embed *discordgo.MessageEmbed) error
	Text(channelID, content string) error
}

// Request is a parsed command invocation
type Request struct {
	UserID    string
	Username  string
	ChannelID string
	Args      []string
	Reply     Responder
}

// Command represents a bot command
type Command interface {
	Execute(ctx context.Context, req *Request) error
	Help() string
}

// Observer receives one call per executed command
type Observer interface {
	ObserveCommand(name string, started time.Time, err error)
}

// Registry manages all bot commands
type Registry struct {
	prefix   string
	commands map[string]Command
	log      *logger.Logger
	observer Observer
}

// NewRegistry creates a new command registry
func NewRegistry(prefix string, log *logger.Logger, observer Observer) *Registry {
	return &Registry{
		prefix:   prefix,
		commands: make(map[string]Command),
		log:      log,
		observer: observer,
	}
}

// Register registers a command with the registry
func (r *Registry) Register(name string, cmd Command) {
	r.commands[name] = cmd
	r.log.Infof("Registered command: %s", name)
}

// Handle processes a message and executes the appropriate command
func (r *Registry) Handle(s *discordgo.Session, m *discordgo.MessageCreate) {
	req, name, ok := r.Parse(m.Content)
	if !ok {
		return
	}
	req.UserID = m.Author.ID
	req.Username = m.Author.Username
	req.ChannelID = m.ChannelID
	req.Reply = sessionResponder{s}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	r.Dispatch(ctx, name, req)
}

// Parse splits a message into a command name and its arguments
func (r *Registry) Parse(content string) (*Request, string, bool) {
	if !strings.HasPrefix(content, r.prefix) {
		return nil, "", false
	}

	parts := strings.Fields(strings.TrimPrefix(content, r.prefix))
	if len(parts) == 0 {
		return nil, "", false
	}

	return &Request{Args: parts[1:]}, strings.ToLower(parts[0]), true
}

// Dispatch runs a named command. Failures are logged and answered with a generic message.
func (r *Registry) Dispatch(ctx context.Context, name string, req *Request) {
	cmd, ok := r.commands[name]
	if !ok {
		return
	}

	r.log.Infow("Executing command", "command", name, "user_id", req.UserID)
	started := time.Now()
	err := cmd.Execute(ctx, req)
	if r.observer != nil {
		r.observer.ObserveCommand(name, started, err)
	}
	if err == nil {
		return
	}

	r.log.Errorw("Command failed", "command", name, "user_id", req.UserID, "error", err)
	if replyErr := req.Reply.Text(req.ChannelID, "Something went wrong while handling that. Please try again later."); replyErr != nil {
		r.log.Warnw("Failed to send error reply", "error", replyErr)
	}
}

// GetCommands returns all registered commands
func (r *Registry) GetCommands() map[string]Command {
	return r.commands
}

// HelpText lists every command with its usage, sorted by name
func (r *Registry) HelpText() string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString("`" + r.prefix + name + "` " + r.commands[name].Help() + "\n")
	}
	return b.String()
}

type sessionResponder struct {
	s *discordgo.Session
}

func (r sessionResponder) Embed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := r.s.ChannelMessageSendEmbed(channelID, embed)
	return err
}

func (r sessionResponder) Text(channelID, content string) error {
	_, err := r.s.ChannelMessageSend(channelID, content)
	return err
}
