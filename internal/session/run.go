package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	killGracePeriod            = 5 * time.Second
	errorRunProgramFormat      = "run browser: %w"
	errorUnexpectedModelFormat = "browser returned unexpected model %T"
)

// Run drives model until the user opens an entry or quits. The terminal is
// switched to the alternate screen for the duration and restored on return,
// including after SIGINT or SIGTERM and when ctx is cancelled.
func Run(ctx context.Context, model Model, programOptions ...tea.ProgramOption) (Result, error) {
	options := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
		tea.WithContext(ctx),
	}, programOptions...)
	program := tea.NewProgram(model, options...)

	runDone := make(chan struct{})
	defer close(runDone)

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalChannel)
	go func() {
		select {
		case <-runDone:
			return
		case <-signalChannel:
		}

		program.Quit()

		select {
		case <-runDone:
			return
		case <-signalChannel:
		case <-time.After(killGracePeriod):
		}

		program.Kill()
	}()

	finalModel, runError := program.Run()
	if runError != nil {
		if errors.Is(runError, tea.ErrProgramKilled) && ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, fmt.Errorf(errorRunProgramFormat, runError)
	}
	finished, ok := finalModel.(Model)
	if !ok {
		return Result{}, fmt.Errorf(errorUnexpectedModelFormat, finalModel)
	}
	return finished.Result(), nil
}
