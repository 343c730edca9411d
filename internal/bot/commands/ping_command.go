package commands

import (
	"context"
	"time"
)

// PingCommand replies with the gateway heartbeat latency
type PingCommand struct {
	latency func() time.Duration
}

// NewPingCommand creates a ping command; latency may be nil
func NewPingCommand(latency func() time.Duration) *PingCommand {
	return &PingCommand{latency: latency}
}

func (c *PingCommand) Help() string {
	return "check that the bot is alive"
}

func (c *PingCommand) Execute(_ context.Context, req *Request) error {
	msg := "Pong!"
	if c.latency != nil {
		msg += " Latency: " + c.latency().Round(time.Millisecond).String()
	}
	return req.Reply.Text(req.ChannelID, msg)
}

// HelpCommand lists the registered commands
type HelpCommand struct {
	registry *Registry
}

func NewHelpCommand(r *Registry) *HelpCommand {
	return &HelpCommand{registry: r}
}

func (c *HelpCommand) Help() string {
	return "show this list"
}

func (c *HelpCommand) Execute(_ context.Context, req *Request) error {
	return req.Reply.Embed(req.ChannelID, newEmbed("MamaBot commands", c.registry.HelpText(), colorInfo, req))
}
