package main

import (
	"fmt"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/engine"
	"github.com/spf13/cobra"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <favorite|archive|delete> <id>...",
		Short: "Apply one action to several garments",
		Long: `Apply one action to several garments, one request at a time. A failure on
one garment does not stop the others; the summary lists what failed.

Examples:
  wardrobe batch favorite 3 5 8
  wardrobe batch archive 3,5,8
  wardrobe batch delete 3 5 --yes`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().BoolP("yes", "y", false, "Delete without asking")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	action, err := engine.ParseBatchAction(args[0])
	if err != nil {
		return common.NewUserError(fmt.Sprintf("unknown batch action %q (use favorite, archive or delete)", args[0]), err)
	}
	ids, err := parseIDs(args[1:])
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

	ctx := cmd.Context()
	selection := engine.NewSelection(ids...)

	yes, _ := cmd.Flags().GetBool("yes")
	if action == engine.BatchDelete && selection.Len() > 0 && !yes {
		ok, err := confirm(ctx, cmd, fmt.Sprintf("Delete %d garment(s)? This cannot be undone.", selection.Len()))
		if err != nil {
			return err
		}
		if !ok {
			return renderer.Message("Delete cancelled")
		}
	}

	result, err := engine.NewBatchRunner(svc, newNotifier(cmd)).Run(ctx, action, selection)
	if err != nil {
		return common.NewUserError("select garments first: pass at least one id", err)
	}
	if err := renderer.BatchResult(result); err != nil {
		return err
	}
	if result.Success == 0 && result.Failed > 0 {
		return fmt.Errorf("%s failed for all %d garment(s)", result.Action, result.Failed)
	}
	return nil
}
