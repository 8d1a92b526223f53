package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/noborus/ov/oviewer"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"countrypick/internal/api"
	"countrypick/internal/config"
	"countrypick/internal/i18n"
	"countrypick/internal/search"
	"countrypick/internal/ui/views"
)

type listOptions struct {
	query   string
	noPager bool
}

func newListCmd(root *options) *cobra.Command {
	lo := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the country list sorted by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, root, os.Getenv)
			if err != nil {
				return err
			}
			return runList(cmd.Context(), cmd.OutOrStdout(), cfg, lo)
		},
	}

	cmd.Flags().StringVarP(&lo.query, "query", "q", "", "Only countries whose name or currency code contains this text")
	cmd.Flags().BoolVar(&lo.noPager, "no-pager", false, "Write to stdout even on a terminal")
	return cmd
}

func runList(ctx context.Context, out io.Writer, cfg *config.Config, lo *listOptions) error {
	closeLog := setupLogging(cfg.Log.File, os.Stderr)
	defer closeLog()

	i18n.Init(cfg.UI.Language)

	if ctx == nil {
		ctx = context.Background()
	}
	client := api.NewClient(api.ClientConfig{
		URL:     cfg.API.URL,
		Timeout: cfg.API.Timeout.Duration,
	})

	raw, err := client.FetchCountries(ctx)
	if err != nil {
		log.Printf("Error fetching countries: %v", err)
		return fmt.Errorf("failed to list countries: %w", err)
	}
	records, skipErr := api.ToRecords(raw)
	if skipErr != nil {
		log.Printf("list: skipped %d records: %v", len(raw)-len(records), skipErr)
	}

	state := search.Initialize(records, search.NewCollator(cfg.LanguageTag()))
	if !search.Blank(lo.query, search.ModeSync) {
		state.UpdateQuery(lo.query, search.ModeSync)
	}

	rendered := views.NewStyles().CountryTable(state.Filtered, views.TableHeaders{
		Flag:     i18n.T("list.flag"),
		Name:     i18n.T("list.name"),
		Code:     i18n.T("list.code"),
		Currency: i18n.T("list.currency"),
	})

	if !lo.noPager && isTerminal(out) {
		return page(rendered)
	}
	_, err = fmt.Fprintln(out, rendered)
	return err
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// page shows content in ov, which takes over the terminal until quit
func page(content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}
