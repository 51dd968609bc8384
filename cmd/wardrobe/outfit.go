package main

import (
	"fmt"

	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/spf13/cobra"
)

func outfitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outfit",
		Short: "Get outfit recommendations",
	}

	cmd.AddCommand(outfitItemCmd())
	cmd.AddCommand(outfitOccasionCmd())
	return cmd
}

func outfitItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item <id>",
		Short: "Suggest garments that go with one garment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, svc, renderer, err := garmentCommand(cmd, args)
			if err != nil {
				return err
			}

			occasion, _ := cmd.Flags().GetString("occasion")
			season, _ := cmd.Flags().GetString("season")
			limit, _ := cmd.Flags().GetInt("limit")

			outfit, err := svc.ItemOutfit(cmd.Context(), id, model.ItemOutfitQuery{
				Occasion: occasion,
				Season:   model.NormalizeSeason(season),
				Limit:    limit,
			})
			if err != nil {
				return fmt.Errorf("failed to recommend outfits for garment %d: %w", id, err)
			}
			return renderer.ItemOutfit(outfit)
		},
	}

	cmd.Flags().String("occasion", "", "Occasion to dress for")
	cmd.Flags().String("season", "", "Season to dress for")
	cmd.Flags().Int("limit", 3, "Suggestions per category")
	return cmd
}

func outfitOccasionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "occasion <occasion>",
		Short: "Suggest complete outfits for an occasion",
		Long: `Suggest complete outfits for an occasion such as 上班通勤 or 约会.

Examples:
  wardrobe outfit occasion 上班通勤
  wardrobe outfit occasion 约会 --season 春季 --style 优雅`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			season, _ := cmd.Flags().GetString("season")
			style, _ := cmd.Flags().GetString("style")

			result, err := svc.OccasionOutfits(cmd.Context(), model.OccasionQuery{
				Occasion: args[0],
				Season:   model.NormalizeSeason(season),
				Style:    style,
			})
			if err != nil {
				return fmt.Errorf("failed to recommend outfits for %s: %w", args[0], err)
			}
			return renderer.OccasionOutfits(result)
		},
	}

	cmd.Flags().String("season", "", "Season to dress for")
	cmd.Flags().String("style", "", "Preferred style")
	return cmd
}

func colorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors <color>",
		Short: "Show which colors pair well with a color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			matching, err := svc.ColorMatching(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load color matches for %s: %w", args[0], err)
			}
			return renderer.ColorMatching(matching)
		},
	}
}
