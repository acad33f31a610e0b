package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
)

var trendsDate string

var trendsCmd = &cobra.Command{
	Use:     "trends <keyword[,keyword...]>",
	Short:   "Show interest over time for one or more keywords.",
	Example: `  saasctl trends "coffee,tea" --date "today 3-m"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := newProvider(engineConfig())
		if err != nil {
			return err
		}
		return runTrends(cmd.Context(), cmd.OutOrStdout(), provider, args, trendsDate, viper.GetString("output"))
	},
}

func init() {
	trendsCmd.Flags().StringVar(&trendsDate, "date", trends.DefaultDate, "time range, e.g. \"today 12-m\"")
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(ctx context.Context, w io.Writer, p trends.Provider, args []string, date, format string) error {
	keywords, err := trends.ParseKeywords(args...)
	if err != nil {
		return err
	}
	series, err := p.Trends(ctx, &trends.Request{Keywords: keywords, Date: date})
	if err != nil {
		return err
	}
	if format == "json" {
		return writeJSON(w, series)
	}
	writeSeries(w, series)
	return nil
}
