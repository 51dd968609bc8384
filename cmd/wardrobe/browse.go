package main

import (
	"errors"
	"os"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/engine"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/Veraticus/wardrobe/internal/tui"
	"github.com/Veraticus/wardrobe/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [file|dir]...",
		Short: "Browse your closet in an interactive terminal view",
		Long: `Open the interactive closet browser: a grid of garments with a detail pane,
statistics and batch mode. Paths given on the command line are uploaded
first, with a confirmation form for every image.

Keys: arrows/hjkl move, enter opens, b starts batch mode, space selects,
f favorites, A archives, x deletes, ? shows all keys, q quits.

Logs go to ~/.local/state/wardrobe/wardrobe.log unless logging.file is set.`,
		RunE: runBrowse,
	}

	cmd.Flags().String("theme", "default", "Color theme (default, catppuccin, linen)")
	cmd.Flags().Bool("no-stats", false, "Hide the statistics panel")
	cmd.Flags().Bool("favorites", false, "Show favorites only")
	cmd.Flags().String("category", "", "Show one category only")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return common.NewUserError("browse needs an interactive terminal; use list or upload instead", errors.New("not a terminal"))
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	var queue *engine.SelectionQueue
	if len(args) > 0 {
		queue = engine.NewSelectionQueue(newNotifier(cmd))
		if _, _, err := queue.AddPaths(args...); err != nil {
			return err
		}
	}

	noStats, _ := cmd.Flags().GetBool("no-stats")
	category, _ := cmd.Flags().GetString("category")

	opts := []tui.Option{
		tui.WithService(svc),
		tui.WithTheme(themes.GetTheme(viper.GetString("tui.theme"))),
		tui.WithAutoClassify(settings.Upload.AutoClassify),
		tui.WithStats(!noStats),
		tui.WithFilter(browseFilter(cmd, category)),
	}
	if width, height, ok := terminalSize(os.Stdout); ok {
		opts = append(opts, tui.WithSize(width, height))
	}

	return tui.Browse(cmd.Context(), queue, opts...)
}

func browseFilter(cmd *cobra.Command, category string) model.ListFilter {
	filter := model.ListFilter{Category: category}
	if favorites, _ := cmd.Flags().GetBool("favorites"); favorites {
		filter.IsFavorite = &favorites
	}
	return filter
}
