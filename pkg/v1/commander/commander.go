package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

// Command names understood by syncer.
const (
	CommandSync    = "sync"
	CommandCleanup = "cleanup"
	CommandReset   = "reset"
)

// Command is message triggering syncer operation.
type Command struct {
	Command string `json:"command"`
	// Abort collapses running cleanup cycle instead of advancing it. Used only with cleanup command.
	Abort bool `json:"abort,omitempty"`
}

//go:generate mockery --name Sender --filename sender.go

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// Commander sends syncer commands.
type Commander struct {
	sender Sender
}

// NewCommander returns new Commander using provided sender for sending messages.
func NewCommander(sender Sender) Commander {
	return Commander{
		sender: sender,
	}
}

// SendSync sends command syncing next feed page.
func (c Commander) SendSync(ctx context.Context) error {
	return c.send(ctx, Command{Command: CommandSync})
}

// SendCleanup sends command running single cleanup step.
func (c Commander) SendCleanup(ctx context.Context) error {
	return c.send(ctx, Command{Command: CommandCleanup})
}

// SendCleanupAbort sends command aborting cleanup cycle.
func (c Commander) SendCleanupAbort(ctx context.Context) error {
	return c.send(ctx, Command{Command: CommandCleanup, Abort: true})
}

// SendReset sends command resetting sync cursor.
func (c Commander) SendReset(ctx context.Context) error {
	return c.send(ctx, Command{Command: CommandReset})
}

func (c Commander) send(ctx context.Context, cmd Command) error {
	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal %s command: %w", cmd.Command, err)
	}

	if err = c.sender.Send(ctx, cmdMsg); err != nil {
		return fmt.Errorf("can't send %s command: %w", cmd.Command, err)
	}

	return nil
}
