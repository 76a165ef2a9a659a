package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/prodview/internal/catalog"
	"github.com/me/prodview/internal/controller"
	"github.com/me/prodview/internal/search"
	"github.com/me/prodview/internal/view"
	"github.com/me/prodview/pkg/model"
)

func newSearchCmd() *cobra.Command {
	var (
		sortKey string
		follow  bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Print products matching a query",
		Long: "Print products matching a query. With --follow, queries are read from\n" +
			"stdin one per line and only the value left after the debounce delay is searched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := model.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !follow {
				if len(args) == 0 {
					return fmt.Errorf("search: %w: query required", catalog.ErrInvalidArgument)
				}
				return printSearch(cmd, out, strings.Join(args, " "), key)
			}

			lines := make(chan string)
			go func() {
				defer close(lines)
				sc := bufio.NewScanner(cmd.InOrStdin())
				for sc.Scan() {
					select {
					case lines <- strings.TrimSpace(sc.Text()):
					case <-cmd.Context().Done():
						return
					}
				}
			}()

			settled := search.Debouncer{Delay: cfg.Debounce}.Run(cmd.Context(), lines)
			for q := range settled {
				if q == "" {
					continue
				}
				if err := printSearch(cmd, out, q, key); err != nil {
					return err
				}
			}
			return cmd.Context().Err()
		},
	}

	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort results (price-asc, price-desc, title)")
	cmd.Flags().BoolVar(&follow, "follow", false, "Read queries from stdin and search each settled one")

	return cmd
}

// printSearch runs one search through the controller and prints the view.
func printSearch(cmd *cobra.Command, out io.Writer, query string, key model.SortKey) error {
	s := controller.New(controller.Config{Mode: model.ModePaged, PerPage: cfg.PageSize})
	s, _ = controller.Reduce(s, controller.SortChanged{Key: key})
	s, effs := controller.Reduce(s, controller.SearchSettled{Query: query})

	for _, eff := range effs {
		fs, ok := eff.(controller.FetchSearch)
		if !ok {
			continue
		}
		res, err := client.SearchProducts(cmd.Context(), fs.Query)
		if err != nil {
			return fmt.Errorf("search %q: %w", fs.Query, err)
		}
		logger.Debug("search fetched", "query", fs.Query, "products", len(res.Products))
		s, _ = controller.Reduce(s, controller.SearchLoaded{Gen: fs.Gen, Result: res})
	}

	fmt.Fprintln(out, view.Render(s, view.PlainStyles(), 0))
	return nil
}
