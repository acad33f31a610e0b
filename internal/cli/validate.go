package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

// errValidationFailed 结果已输出，仅用于设置退出码
var errValidationFailed = errors.New("validation failed")

type ideaValidator interface {
	Validate(ctx context.Context, idea string, opts model.Options) *model.ValidationResult
	ValidateBatch(ctx context.Context, ideas []string, opts model.Options) *model.BatchResult
}

var (
	noTrends   bool
	maxQueries int
)

var validateCmd = &cobra.Command{
	Use:   "validate <idea>",
	Short: "Validate a single SaaS idea.",
	Example: `  saasctl validate "AI bookkeeping for freelancers"
  saasctl validate --no-trends -o json "Shopify app for wholesale pricing"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, _, err := newEngine()
		if err != nil {
			return err
		}
		return runValidate(cmd.Context(), cmd.OutOrStdout(), e, strings.Join(args, " "), options(), viper.GetString("output"))
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Validate every idea in a file, one per line. Use - for stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		ideas, err := readIdeas(r)
		if err != nil {
			return err
		}

		e, _, err := newEngine()
		if err != nil {
			return err
		}
		return runBatch(cmd.Context(), cmd.OutOrStdout(), e, ideas, options(), viper.GetString("output"))
	},
}

func init() {
	for _, c := range []*cobra.Command{validateCmd, batchCmd} {
		c.Flags().BoolVar(&noTrends, "no-trends", false, "skip trend lookup and rely on the model only")
		c.Flags().IntVar(&maxQueries, "max-queries", model.DefaultMaxQueries, "maximum number of trend keywords (1-10)")
		rootCmd.AddCommand(c)
	}
}

func options() model.Options {
	include := !noTrends
	return model.Options{IncludeTrends: &include, MaxQueries: maxQueries}
}

func runValidate(ctx context.Context, w io.Writer, v ideaValidator, idea string, opts model.Options, format string) error {
	res := v.Validate(ctx, idea, opts)
	if format == "json" {
		if err := writeJSON(w, res); err != nil {
			return err
		}
	} else {
		writeResult(w, res)
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", errValidationFailed, res.Error)
	}
	return nil
}

func runBatch(ctx context.Context, w io.Writer, v ideaValidator, ideas []string, opts model.Options, format string) error {
	if len(ideas) == 0 {
		return errors.New("no ideas to validate")
	}
	br := v.ValidateBatch(ctx, ideas, opts)
	if format == "json" {
		if err := writeJSON(w, br); err != nil {
			return err
		}
	} else {
		writeBatch(w, br)
	}
	if !br.Success {
		return fmt.Errorf("%w: all %d ideas failed", errValidationFailed, br.TotalQueries)
	}
	return nil
}

// readIdeas 每行一个创意，忽略空行与 # 注释
func readIdeas(r io.Reader) ([]string, error) {
	var ideas []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ideas = append(ideas, line)
	}
	return ideas, sc.Err()
}
