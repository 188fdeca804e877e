package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/rabbitmq"
	"github.com/MichalMitros/supplier-feed-sync/pkg/v1/commander"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Consumer --filename consumer.go

// Consumer consumes messages from queue.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// RMQHandler handles RMQ commands.
type RMQHandler struct {
	consumer Consumer
	commands Commands
	logger   *zerolog.Logger
}

// NewRMQHandler returns new RMQHandler.
func NewRMQHandler(consumer Consumer, commands Commands, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		consumer: consumer,
		commands: commands,
		logger:   logger,
	}
}

// Start starts consuming and handling commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.consumer.Consume(ctx, queue, h.Handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

// Handle decodes command and runs it.
func (h *RMQHandler) Handle(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}

	logger := h.logger.With().Str("command", cmd.Command).Logger()
	logger.Debug().Msg("command received")

	switch cmd.Command {
	case commander.CommandSync:
		report, err := h.commands.Sync(ctx)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		logger.Debug().Str("outcome", string(report.Outcome)).Msg("command finished")
	case commander.CommandCleanup:
		err = h.cleanup(ctx, cmd.Abort)
		if errors.Is(err, ErrCleanupRunning) {
			logger.Info().Msg("command skipped, cleanup already running")
			return nil
		}
		if err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
		logger.Debug().Msg("command finished")
	case commander.CommandReset:
		if err = h.commands.Reset(ctx); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		logger.Debug().Msg("command finished")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Command)
	}

	return nil
}

func (h *RMQHandler) cleanup(ctx context.Context, abort bool) error {
	if abort {
		return h.commands.AbortCleanup(ctx)
	}

	_, err := h.commands.Cleanup(ctx)
	return err
}

func decodeMessage(msg []byte) (*commander.Command, error) {
	var cmd commander.Command
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode command: %w", err)
	}

	return &cmd, nil
}
