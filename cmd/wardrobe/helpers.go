package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/wardrobe/internal/api"
	"github.com/Veraticus/wardrobe/internal/cli"
	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// newService creates the closet service client from the loaded settings.
func newService() (service.ClothesService, error) {
	client, err := api.New(api.Config{
		BaseURL:           settings.API.BaseURL,
		Timeout:           settings.API.Timeout,
		RequestsPerSecond: settings.API.RequestsPerSecond,
		RetryAttempts:     settings.API.RetryAttempts,
		Breaker: api.BreakerConfig{
			Enabled:      settings.API.Breaker.Enabled,
			FailureRatio: settings.API.Breaker.FailureRatio,
			MinRequests:  settings.API.Breaker.MinRequests,
			OpenTimeout:  settings.API.Breaker.OpenTimeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service client: %w", err)
	}
	return client, nil
}

func newRenderer(cmd *cobra.Command) (*cli.Renderer, error) {
	return cli.NewRenderer(cmd.OutOrStdout(), settings.Output)
}

func newNotifier(cmd *cobra.Command) *cli.Notifier {
	return cli.NewNotifier(cmd.ErrOrStderr(), settings.Output != "table")
}

// parseID parses a garment id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(
			fmt.Sprintf("%q is not a garment id", arg),
			fmt.Errorf("invalid garment id %q", arg),
		)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		// Accept "1,2,3" as well as separate arguments.
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := parseID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// confirm asks a yes/no question on the command's streams. Anything but y/yes is a no.
func confirm(ctx context.Context, cmd *cobra.Command, question string) (bool, error) {
	if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N]: ", cli.FormatPrompt(question)); err != nil {
		return false, err
	}
	answer, err := cli.NewNonBlockingReader(cmd.InOrStdin()).ReadLine(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// terminalSize returns the size of the terminal behind f, or ok=false when f is not one.
func terminalSize(f *os.File) (width, height int, ok bool) {
	width, height, err := term.GetSize(int(f.Fd())) //nolint:gosec // file descriptors fit in int
	if err != nil {
		return 0, 0, false
	}
	return width, height, true
}
