package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/me/prodview/internal/view"
	"github.com/me/prodview/pkg/model"
)

func newListCmd() *cobra.Command {
	var (
		page        int
		pages       int
		pageSize    int
		sortKey     string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one or more catalog pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := model.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			if page < 1 || pages < 1 || concurrency < 1 {
				return errors.New("--page, --pages and --concurrency must be at least 1")
			}
			if !cmd.Flags().Changed("page-size") {
				pageSize = cfg.PageSize
			}
			cursor := model.NewCursor(pageSize)

			results := make([]*model.PageResult, pages)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(concurrency)
			for i := range pages {
				c := cursor
				c.Page = page + i
				g.Go(func() error {
					res, err := client.ListProducts(ctx, c.PerPage, c.Offset())
					if err != nil {
						return fmt.Errorf("list page %d: %w", c.Page, err)
					}
					results[i] = res
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := view.PlainStyles()
			for i, res := range results {
				logger.Debug("page fetched", "page", page+i, "products", len(res.Products))
				fmt.Fprintln(out, view.PageLabel(page+i, cursor.TotalPages(res.TotalOr())))
				fmt.Fprintln(out, view.ProductList(model.SortProducts(res.Products, key), st, 0))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "First page to print")
	cmd.Flags().IntVar(&pages, "pages", 1, "Number of pages to print")
	cmd.Flags().IntVar(&pageSize, "page-size", model.DefaultPageSize, "Products per page (default from config)")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort within each page (price-asc, price-desc, title)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Pages fetched in parallel")

	return cmd
}
