package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/slidetext/cmd/slidetext/opts"
	"github.com/walteh/slidetext/pkg/deck"
	"github.com/walteh/slidetext/pkg/log"
	"github.com/walteh/slidetext/pkg/match"
	"github.com/walteh/slidetext/pkg/operation"
	"github.com/walteh/slidetext/pkg/status"
)

// NewReplaceCmd creates a new replace command
func NewReplaceCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		oldValue   string
		newValue   string
		slideIndex int
		allSlides  bool
		regex      bool
		ignoreCase bool
		shapeGlob  string
		noWarn     bool
		parallel   bool
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "replace",
		Short: "Replace text on a slide or across the whole deck",
		Long: `Replace finds every occurrence of a pattern in the target scope and
rewrites the matched runs, keeping the formatting of all untouched text.
It will:
1. Load the deck
2. Resolve the scope (current slide, --slide N, or --all)
3. Rewrite matching paragraphs
4. Save the deck and print a report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "replace").Logger().WithContext(ctx)

			console := log.New(cmd.OutOrStdout(), zerolog.GlobalLevel())
			ctx = log.NewContext(ctx, console)
			console.Header("replacing text in " + ro.Deck())

			doc, err := deck.Load(ctx, ro.Deck())
			if err != nil {
				return errors.Errorf("loading deck: %w", err)
			}

			rule := operation.Rule{
				Old: oldValue,
				New: newValue,
				Match: match.Options{
					Literal:    !regex,
					IgnoreCase: ignoreCase,
				},
				AllSlides: allSlides,
				ShapeGlob: shapeGlob,
				Warn:      !noWarn,
				Parallel:  parallel,
			}
			if cmd.Flags().Changed("slide") {
				rule.Slide = &slideIndex
			}

			result, err := operation.Replace(ctx, doc, rule)
			if err != nil {
				return errors.Errorf("replacing text: %w", err)
			}

			logPass(ctx, log.PassOperation{
				Pattern: oldValue,
				Scope:   result.Scope,
				Deck:    ro.Deck(),
			}, result)

			report := &status.Report{Deck: ro.Deck()}
			report.Add(oldValue, result)
			status.NewRenderer(*zerolog.Ctx(ctx)).Render(report)

			if dryRun {
				console.Info("dry run, deck not saved")
				return nil
			}
			if err := deck.Save(ctx, ro.Output(), doc); err != nil {
				return errors.Errorf("saving deck: %w", err)
			}
			console.Successf("saved %s", ro.Output())
			return nil
		},
	}

	cmd.Flags().StringVar(&oldValue, "old", "", "text or pattern to search for (required)")
	cmd.Flags().StringVar(&newValue, "new", "", "replacement text, always literal")
	cmd.Flags().IntVar(&slideIndex, "slide", 0, "1-based slide index; defaults to the deck's current slide")
	cmd.Flags().BoolVar(&allSlides, "all", false, "process every slide in the deck")
	cmd.Flags().BoolVar(&regex, "regex", false, "treat --old as a regular expression")
	cmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "match case-insensitively")
	cmd.Flags().StringVar(&shapeGlob, "shapes", "", "only process shapes whose name matches this glob")
	cmd.Flags().BoolVar(&noWarn, "no-warn", false, "suppress the warning when nothing matches")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "process slides concurrently on an --all pass")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report matches without saving the deck")
	_ = cmd.MarkFlagRequired("old")

	return cmd
}
