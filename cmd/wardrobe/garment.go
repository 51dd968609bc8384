package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/wardrobe/internal/cli"
	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/Veraticus/wardrobe/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func favoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "favorite <id>",
		Aliases: []string{"fav"},
		Short:   "Toggle the favorite flag of a garment",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, svc, renderer, err := garmentCommand(cmd, args)
			if err != nil {
				return err
			}

			favorite, err := svc.ToggleFavorite(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to toggle favorite: %w", err)
			}
			if favorite {
				return renderer.Message(fmt.Sprintf("Garment #%d added to favorites", id))
			}
			return renderer.Message(fmt.Sprintf("Garment #%d removed from favorites", id))
		},
	}
}

func archiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Toggle the archived flag of a garment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, svc, renderer, err := garmentCommand(cmd, args)
			if err != nil {
				return err
			}

			archived, err := svc.ToggleArchive(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to toggle archive: %w", err)
			}
			if archived {
				return renderer.Message(fmt.Sprintf("Garment #%d archived", id))
			}
			return renderer.Message(fmt.Sprintf("Garment #%d restored from archive", id))
		},
	}
}

func wearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wear <id>",
		Short: "Record that you wore a garment today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, svc, renderer, err := garmentCommand(cmd, args)
			if err != nil {
				return err
			}

			record, err := svc.RecordWear(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to record wear: %w", err)
			}
			return renderer.Message(fmt.Sprintf("Garment #%d worn %d time(s)", id, record.WearCount))
		},
	}
}

func reclassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reclassify <id>",
		Short: "Run the classifier again over a garment's original image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, svc, renderer, err := garmentCommand(cmd, args)
			if err != nil {
				return err
			}

			slog.Info("Reclassifying garment", "id", id)
			g, err := svc.Reclassify(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to reclassify garment %d: %w", id, err)
			}
			return renderer.Garment(g)
		},
	}
}

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a garment and its images",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, svc, renderer, err := garmentCommand(cmd, args)
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				ok, err := confirm(cmd.Context(), cmd, fmt.Sprintf("Delete garment #%d? This cannot be undone.", id))
				if err != nil {
					return err
				}
				if !ok {
					return renderer.Message("Delete cancelled")
				}
			}

			if err := svc.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete garment %d: %w", id, err)
			}
			return renderer.Message(fmt.Sprintf("Deleted garment #%d", id))
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Delete without asking")
	return cmd
}

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change attributes of a garment",
		Long: `Change attributes of a garment. Only the flags you pass are sent; everything
else stays as it is. List flags replace the whole list.

Examples:
  wardrobe edit 12 --type 风衣 --color 米色
  wardrobe edit 12 --season 春季,秋季 --occasions 上班通勤
  wardrobe edit 12 --price 399 --brand Uniqlo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update, err := garmentUpdate(cmd.Flags())
			if err != nil {
				return err
			}
			if update.IsEmpty() {
				return common.NewUserError("nothing to change: pass at least one attribute flag", errors.New("empty update"))
			}

			id, svc, renderer, err := garmentCommand(cmd, args)
			if err != nil {
				return err
			}

			g, err := svc.Update(cmd.Context(), id, update)
			if err != nil {
				return fmt.Errorf("failed to update garment %d: %w", id, err)
			}
			return renderer.Garment(g)
		},
	}

	flags := cmd.Flags()
	flags.String("category", "", "Category")
	flags.String("type", "", "Type, e.g. 衬衫")
	flags.String("color", "", "Main color")
	flags.String("color-tone", "", "Color tone")
	flags.String("material", "", "Material")
	flags.String("thickness", "", "Thickness (薄款, 中等, 厚款)")
	flags.String("description", "", "Description")
	flags.String("brand", "", "Brand")
	flags.String("notes", "", "Personal notes")
	flags.Float64("price", 0, "Price")
	flags.Bool("favorite", false, "Favorite flag")
	flags.Bool("archived", false, "Archived flag")
	flags.StringSlice("style", nil, "Styles (comma separated)")
	flags.StringSlice("season", nil, "Seasons (comma separated)")
	flags.StringSlice("weather", nil, "Suitable weather (comma separated)")
	flags.StringSlice("occasions", nil, "Suitable occasions (comma separated)")
	flags.StringSlice("matching-colors", nil, "Colors that pair well (comma separated)")
	flags.StringSlice("tags", nil, "Outfit tags (comma separated)")

	return cmd
}

// garmentUpdate maps the edit flags that were given onto a partial update.
func garmentUpdate(flags *pflag.FlagSet) (model.GarmentUpdate, error) {
	var update model.GarmentUpdate

	texts := map[string]**string{
		"category":    &update.Category,
		"type":        &update.Type,
		"color":       &update.Color,
		"color-tone":  &update.ColorTone,
		"material":    &update.Material,
		"thickness":   &update.Thickness,
		"description": &update.Description,
		"brand":       &update.Brand,
		"notes":       &update.UserNotes,
	}
	for name, field := range texts {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return update, err
		}
		*field = &value
	}

	lists := map[string]*[]string{
		"style":           &update.Style,
		"season":          &update.Season,
		"weather":         &update.SuitableWeather,
		"occasions":       &update.SuitableOccasions,
		"matching-colors": &update.MatchingColors,
		"tags":            &update.OutfitTags,
	}
	for name, field := range lists {
		if !flags.Changed(name) {
			continue
		}
		values, err := flags.GetStringSlice(name)
		if err != nil {
			return update, err
		}
		if values == nil {
			values = []string{}
		}
		*field = values
	}
	for i, season := range update.Season {
		update.Season[i] = model.NormalizeSeason(season)
	}

	bools := map[string]**bool{
		"favorite": &update.IsFavorite,
		"archived": &update.IsArchived,
	}
	for name, field := range bools {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return update, err
		}
		*field = &value
	}

	if flags.Changed("price") {
		price, err := flags.GetFloat64("price")
		if err != nil {
			return update, err
		}
		if price < 0 {
			return update, common.NewUserError("price must not be negative", fmt.Errorf("invalid price %v", price))
		}
		update.Price = &price
	}

	return update, nil
}

func imageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image <id>",
		Short: "Download the image of a garment",
		Long: `Download the stored image of a garment. Without --out the image is written
to standard output, which must not be a terminal.

Examples:
  wardrobe image 12 -o shirt.jpg
  wardrobe image 12 --transparent -o shirt.png
  wardrobe image 12 > shirt.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, svc, _, err := garmentCommand(cmd, args)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			transparent, _ := cmd.Flags().GetBool("transparent")

			variant := service.ImageOriginal
			if transparent {
				variant = service.ImageTransparent
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out) //nolint:gosec // path comes from the user's own command line
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer func() {
					if closeErr := f.Close(); closeErr != nil {
						slog.Error("Failed to close image file", "path", out, "error", closeErr)
					}
				}()
				w = f
			} else if f, ok := w.(*os.File); ok && isTerminal(f) {
				return common.NewUserError("refusing to write image data to a terminal; use --out", errors.New("stdout is a terminal"))
			}

			contentType, err := svc.Image(cmd.Context(), id, variant, w)
			if err != nil {
				return fmt.Errorf("failed to download image of garment %d: %w", id, err)
			}

			if out != "" && out != "-" {
				newNotifier(cmd).Success(fmt.Sprintf("Saved %s image of #%d to %s", contentType, id, out))
			}
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "Write the image to this file")
	cmd.Flags().Bool("transparent", false, "Download the background-removed image")
	return cmd
}

// garmentCommand resolves the common pieces of a single-garment command.
func garmentCommand(cmd *cobra.Command, args []string) (int64, service.ClothesService, *cli.Renderer, error) {
	id, err := parseID(args[0])
	if err != nil {
		return 0, nil, nil, err
	}
	svc, err := newService()
	if err != nil {
		return 0, nil, nil, err
	}
	renderer, err := newRenderer(cmd)
	if err != nil {
		return 0, nil, nil, err
	}
	return id, svc, renderer, nil
}
