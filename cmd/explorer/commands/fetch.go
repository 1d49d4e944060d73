package commands

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabriel447/ProductExplorer/internal/catalog"
	"github.com/gabriel447/ProductExplorer/internal/fakestore"
	"github.com/gabriel447/ProductExplorer/pkg/httpclient"
)

func fetchCmd() *cobra.Command {
	var (
		search   string
		category string
		sortKey  string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the catalog once and print a page of products as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := fakestore.New(
				cfg.APIBaseURL,
				httpclient.New(httpclient.DefaultConfig()),
				log,
			)

			engine := catalog.NewEngine(client, log)
			engine.SetPageSize(pageSize)
			engine.SetSearchTerm(search)
			engine.SetCategory(category)
			if sortKey != "" {
				key, err := catalog.ParseSortKey(sortKey)
				if err != nil {
					return err
				}
				engine.SetSortKey(key)
			}

			engine.Fetch(cmd.Context())
			engine.SetPage(page)

			snapshot := engine.Snapshot()
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(snapshot); err != nil {
				return err
			}
			if snapshot.LastError != "" {
				return errors.New(snapshot.LastError)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive title filter")
	cmd.Flags().StringVar(&category, "category", catalog.CategoryAll, "category filter")
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort order (price-asc, price-desc, best-rated)")
	cmd.Flags().IntVar(&page, "page", 0, "zero-based page number")
	cmd.Flags().IntVar(&pageSize, "page-size", catalog.DefaultPageSize, "products per page")

	return cmd
}
