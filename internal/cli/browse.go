package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/me/prodview/internal/tui"
	"github.com/me/prodview/pkg/model"
)

func newBrowseCmd() *cobra.Command {
	var (
		mode     string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pm := cfg.PaginationMode()
			if cmd.Flags().Changed("mode") {
				var err error
				if pm, err = model.ParseMode(mode); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("page-size") {
				pageSize = cfg.PageSize
			}

			ctx := cmd.Context()
			m := tui.New(ctx, client, tui.Options{
				Mode:     pm,
				PerPage:  pageSize,
				Debounce: cfg.Debounce,
			}, logger)

			logger.Info("browse started", "mode", pm, "page_size", pageSize)
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run browser: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(model.ModePaged), "Pagination mode (paged, infinite; default from config)")
	cmd.Flags().IntVar(&pageSize, "page-size", model.DefaultPageSize, "Products per page (default from config)")

	return cmd
}
