package main

import (
	"fmt"

	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List garments in your closet",
		Long: `List garments, optionally narrowed by category, color, style, season or a
free-text search.

Examples:
  wardrobe list                        # Everything that is not archived
  wardrobe list --category 上衣         # Only tops
  wardrobe list --favorites            # Favorites view
  wardrobe list --search 牛仔 --format json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("category", "", "Filter by category")
	cmd.Flags().String("color", "", "Filter by color")
	cmd.Flags().String("style", "", "Filter by style")
	cmd.Flags().String("season", "", "Filter by season (春季, 夏季, 秋季, 冬季)")
	cmd.Flags().StringP("search", "s", "", "Search type, description and notes")
	cmd.Flags().Bool("favorites", false, "Show favorites only")
	cmd.Flags().Bool("archived", false, "Show archived garments instead of active ones")
	cmd.Flags().Int("limit", 0, "Maximum number of garments (0 = service default)")
	cmd.Flags().Int("skip", 0, "Number of garments to skip")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	filter, err := listFilter(cmd)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	renderer, err := newRenderer(cmd)
	if err != nil {
		return err
	}

	items, err := svc.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list garments: %w", err)
	}
	return renderer.Garments(items)
}

// listFilter builds a ListFilter from the list flags. Boolean filters are only
// sent when given, so the service applies its own defaults otherwise.
func listFilter(cmd *cobra.Command) (model.ListFilter, error) {
	flags := cmd.Flags()
	var filter model.ListFilter
	var err error

	if filter.Category, err = flags.GetString("category"); err != nil {
		return filter, err
	}
	if filter.Color, err = flags.GetString("color"); err != nil {
		return filter, err
	}
	if filter.Style, err = flags.GetString("style"); err != nil {
		return filter, err
	}
	season, err := flags.GetString("season")
	if err != nil {
		return filter, err
	}
	filter.Season = model.NormalizeSeason(season)
	if filter.Search, err = flags.GetString("search"); err != nil {
		return filter, err
	}
	if filter.Limit, err = flags.GetInt("limit"); err != nil {
		return filter, err
	}
	if filter.Skip, err = flags.GetInt("skip"); err != nil {
		return filter, err
	}

	if flags.Changed("favorites") {
		favorites, _ := flags.GetBool("favorites")
		filter.IsFavorite = &favorites
	}
	if flags.Changed("archived") {
		archived, _ := flags.GetBool("archived")
		filter.IsArchived = &archived
	}
	return filter, nil
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every attribute of one garment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, err := newService()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			g, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to load garment %d: %w", id, err)
			}
			return renderer.Garment(g)
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show closet statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			var (
				stats   *model.Statistics
				options *model.FilterOptions
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				if stats, err = svc.Statistics(ctx); err != nil {
					return fmt.Errorf("failed to load statistics: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				var err error
				if options, err = svc.FilterOptions(ctx); err != nil {
					return fmt.Errorf("failed to load filter options: %w", err)
				}
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}

			return renderer.Statistics(stats, options)
		},
	}
}

func filtersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "Show the values the list filters accept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			options, err := svc.FilterOptions(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load filter options: %w", err)
			}
			return renderer.FilterOptions(options)
		},
	}
}
