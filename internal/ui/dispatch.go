package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/ktnyt/labmon/internal/operator"
)

const dispatchTimeout = 5 * time.Second

// dispatchCmd posts op to the operator. Views never update state from the
// result: the next poll shows whatever the operator did.
func dispatchCmd(ctx context.Context, api operator.API, logger zerolog.Logger, op operator.Operation) tea.Cmd {
	if api == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
		defer cancel()

		logger.Info().Stringer("op", op).Msg("dispatch")
		if err := api.Dispatch(ctx, op); err != nil {
			discardDispatchError(logger, op, err)
		}
		return nil
	}
}

// discardDispatchError is the failure policy for commands: the error is
// logged and dropped, with no retry and nothing shown to the operator.
// TODO: surface failed commands in the header once the operator reports
// rejection reasons in its response body.
func discardDispatchError(logger zerolog.Logger, op operator.Operation, err error) {
	logger.Debug().Err(err).Stringer("op", op).Msg("dispatch failed, discarded")
}
