package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/wardrobe/internal/cli"
	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/engine"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func uploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file|dir>...",
		Short: "Upload garment photos and confirm their attributes",
		Long: `Upload garment photos one at a time. Each photo is classified by the service
and the proposed attributes are shown for you to accept, edit or skip.
Nothing is saved until you confirm it.

Directories contribute the files directly inside them. Files that are not
images are skipped with a warning.

Examples:
  wardrobe upload shirt.jpg
  wardrobe upload ~/Pictures/closet
  wardrobe upload *.png --no-classify`,
		Args: cobra.MinimumNArgs(1),
		RunE: runUpload,
	}

	cmd.Flags().Bool("no-classify", false, "Store images without running the classifier")
	_ = viper.BindPFlag("upload.no_classify", cmd.Flags().Lookup("no-classify"))

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	autoClassify := settings.Upload.AutoClassify && !viper.GetBool("upload.no_classify")

	svc, err := newService()
	if err != nil {
		return err
	}
	renderer, err := newRenderer(cmd)
	if err != nil {
		return err
	}

	notifier := newNotifier(cmd)
	queue := engine.NewSelectionQueue(notifier)
	added, _, err := queue.AddPaths(args...)
	if err != nil {
		return err
	}
	if added == 0 {
		return common.NewUserError("none of the given files is an image", common.ErrNoValidImages)
	}
	prompter := cli.NewCLIPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	if f, ok := cmd.ErrOrStderr().(*os.File); !ok || !isTerminal(f) {
		prompter.SetPlain(true)
	}
	processor := engine.NewProcessor(svc, prompter, notifier, engine.WithAutoClassify(autoClassify))
	workflow := engine.NewUploadWorkflow(queue, processor)
	workflow.OnAdvance(func(cursor, _ int) { prompter.Advance(cursor) })
	workflow.OnComplete(prompter.ShowCompletion)

	interruptHandler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interruptHandler.HandleInterrupts(cmd.Context(), func() int {
		files, cursor := workflow.Snapshot()
		return len(files) - cursor
	})

	slog.Info("Starting upload", "files", added, "auto_classify", autoClassify)
	prompter.StartProgress(added)

	report, err := workflow.Run(ctx)
	if err != nil {
		if interruptHandler.WasInterrupted() {
			slog.Info("Upload interrupted", "saved", report.Saved, "failed", report.Failed)
			return nil
		}
		if errors.Is(err, ctx.Err()) {
			return fmt.Errorf("upload stopped: %w", err)
		}
		return fmt.Errorf("upload failed: %w", err)
	}

	// Show the refreshed default listing, as the closet view does after an upload.
	items, err := svc.List(cmd.Context(), model.ListFilter{})
	if err != nil {
		return fmt.Errorf("failed to refresh listing: %w", err)
	}
	return renderer.Garments(items)
}
