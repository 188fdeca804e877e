package handler_test

import (
	"context"
	"testing"

	"github.com/MichalMitros/supplier-feed-sync/internal/handler"
	"github.com/MichalMitros/supplier-feed-sync/internal/handler/mocks"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitRMQHandlerHandle(t *testing.T) {
	tests := map[string]struct {
		message string
		prepare func(commands *mocks.Commands)
		wantErr error
	}{
		"sync": {
			message: `{"command":"sync"}`,
			prepare: func(commands *mocks.Commands) {
				commands.On("Sync", mock.Anything).Return(models.SyncReport{Outcome: models.SyncOutcomeCompleted}, nil).Once()
			},
		},
		"sync error": {
			message: `{"command":"sync"}`,
			prepare: func(commands *mocks.Commands) {
				commands.On("Sync", mock.Anything).Return(models.SyncReport{}, assert.AnError).Once()
			},
			wantErr: assert.AnError,
		},
		"cleanup": {
			message: `{"command":"cleanup"}`,
			prepare: func(commands *mocks.Commands) {
				commands.On("Cleanup", mock.Anything).Return(models.CleanupReport{}, nil).Once()
			},
		},
		"cleanup already running is acknowledged": {
			message: `{"command":"cleanup"}`,
			prepare: func(commands *mocks.Commands) {
				commands.On("Cleanup", mock.Anything).Return(models.CleanupReport{}, handler.ErrCleanupRunning).Once()
			},
		},
		"cleanup error": {
			message: `{"command":"cleanup"}`,
			prepare: func(commands *mocks.Commands) {
				commands.On("Cleanup", mock.Anything).Return(models.CleanupReport{}, assert.AnError).Once()
			},
			wantErr: assert.AnError,
		},
		"cleanup abort": {
			message: `{"command":"cleanup","abort":true}`,
			prepare: func(commands *mocks.Commands) {
				commands.On("AbortCleanup", mock.Anything).Return(nil).Once()
			},
		},
		"reset": {
			message: `{"command":"reset"}`,
			prepare: func(commands *mocks.Commands) {
				commands.On("Reset", mock.Anything).Return(nil).Once()
			},
		},
		"unknown command": {
			message: `{"command":"purge"}`,
			prepare: func(*mocks.Commands) {},
			wantErr: handler.ErrUnknownCommand,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			commands := mocks.NewCommands(t)
			tt.prepare(commands)

			nop := zerolog.Nop()
			h := handler.NewRMQHandler(mocks.NewConsumer(t), commands, &nop)

			err := h.Handle(context.TODO(), []byte(tt.message))

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}
}

func TestUnitRMQHandlerHandleInvalidMessage(t *testing.T) {
	nop := zerolog.Nop()
	h := handler.NewRMQHandler(mocks.NewConsumer(t), mocks.NewCommands(t), &nop)

	err := h.Handle(context.TODO(), []byte("{not json"))

	assert.ErrorContains(t, err, "can't decode command")
}

func TestUnitRMQHandlerStart(t *testing.T) {
	errs := make(chan error)
	close(errs)

	tests := map[string]struct {
		consumeErr error
	}{
		"ok":            {},
		"consume error": {consumeErr: assert.AnError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			consumer := mocks.NewConsumer(t)
			consumer.On("Consume", mock.Anything, "feedsync.commands", mock.Anything).
				Return((<-chan error)(errs), tt.consumeErr).Once()

			nop := zerolog.Nop()
			h := handler.NewRMQHandler(consumer, mocks.NewCommands(t), &nop)

			require.ErrorIs(t, h.Start(context.TODO(), "feedsync.commands"), tt.consumeErr)
		})
	}
}
