package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/edugroup/site-api/app"
	"github.com/edugroup/site-api/manager"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/filters"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// contentCmd reads admin content lists with the dashboard's filters
var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Browse admin content lists",
}

var contentListCmd = &cobra.Command{
	Use:   "list <institutions|achievers|papers|resources|updates|media|news|admissions>",
	Short: "List rows of a content type as JSON",
	Long: `List rows of a content type as JSON.

Filters use the same names as the admin API query string, e.g.
  site-api content list achievers --filter category=neet --filter year=2024
  site-api content list news --search admission
  site-api content list admissions --filter status=pending`,
	Args: cobra.ExactArgs(1),
	RunE: runContentList,
}

var (
	contentFilters []string
	contentSearch  string
)

func init() {
	contentListCmd.Flags().StringArrayVar(&contentFilters, "filter", nil, "key=value filter, repeatable")
	contentListCmd.Flags().StringVar(&contentSearch, "search", "", "free text search")
	contentCmd.AddCommand(contentListCmd)
}

// flagQuery exposes --filter and --search through the filters.Getter shape
func flagQuery() (filters.Getter, error) {
	values := map[string]string{}
	for _, kv := range contentFilters {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("filter %q must be key=value", kv)
		}
		values[k] = v
	}
	if contentSearch != "" {
		values["search"] = contentSearch
	}
	return func(key string) string { return values[key] }, nil
}

// listContent loads a managed list and keeps the rows the filter accepts
func listContent[T, C, U any, F manager.Matcher[T]](ctx context.Context, m *manager.Manager[T, C, U], parse func(filters.Getter) (F, error), get filters.Getter) ([]T, error) {
	f, err := parse(get)
	if err != nil {
		return nil, err
	}
	return m.Filtered(ctx, f), nil
}

func runContentList(cmd *cobra.Command, args []string) error {
	get, err := flagQuery()
	if err != nil {
		return err
	}

	_, store, err := app.Bootstrap()
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := contentRows(cmd.Context(), store.DB(), args[0], get)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func contentRows(ctx context.Context, db *gorm.DB, kind string, get filters.Getter) (interface{}, error) {
	switch kind {
	case "institutions":
		return manager.NewInstitutionManager(services.NewInstitutionService(db)).Items(ctx), nil
	case "achievers":
		return listContent(ctx, manager.NewAchieverManager(services.NewAchieverService(db)), filters.AchieverFromQuery, get)
	case "papers":
		return listContent(ctx, manager.NewPaperManager(services.NewPaperService(db)), filters.PaperFromQuery, get)
	case "resources":
		return listContent(ctx, manager.NewResourceManager(services.NewCareerResourceService(db)), filters.ResourceFromQuery, get)
	case "updates":
		return listContent(ctx, manager.NewQuickUpdateManager(services.NewQuickUpdateService(db)), filters.QuickUpdateFromQuery, get)
	case "media":
		return listContent(ctx, manager.NewMediaManager(services.NewMediaService(db)), filters.MediaFromQuery, get)
	case "news":
		return listContent(ctx, manager.NewNewsManager(services.NewNewsService(db)), filters.NewsFromQuery, get)
	case "admissions":
		return listContent(ctx, manager.NewAdmissionManager(services.NewAdmissionService(db, nil)), filters.AdmissionFromQuery, get)
	}
	return nil, fmt.Errorf("unknown content type %q", kind)
}
