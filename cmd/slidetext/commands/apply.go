package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/slidetext/cmd/slidetext/opts"
	"github.com/walteh/slidetext/pkg/config"
	"github.com/walteh/slidetext/pkg/deck"
	"github.com/walteh/slidetext/pkg/log"
	"github.com/walteh/slidetext/pkg/match"
	"github.com/walteh/slidetext/pkg/operation"
	"github.com/walteh/slidetext/pkg/status"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(ro *opts.RootOpts) *cobra.Command {
	var rulesFile string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a rule file of replacements to a deck",
		Long: `Apply loads a rule file (.yaml or .hcl) and runs each replacement rule
against the deck in order. The deck path may come from the rule file or the
--deck flag; the flag wins when both are set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "apply").Logger().WithContext(ctx)

			rs, err := config.Load(ctx, rulesFile)
			if err != nil {
				return errors.Errorf("loading rules: %w", err)
			}

			deckPath := rs.Deck
			if ro.Deck() != "" {
				deckPath = ro.Deck()
			}
			if deckPath == "" {
				return errors.Errorf("no deck file: set deck in %s or pass --deck", rulesFile)
			}

			doc, err := deck.Load(ctx, deckPath)
			if err != nil {
				return errors.Errorf("loading deck: %w", err)
			}

			console := log.New(cmd.OutOrStdout(), zerolog.GlobalLevel())
			ctx = log.NewContext(ctx, console)
			console.Header("applying " + rulesFile)

			report := &status.Report{Deck: deckPath}
			for i, spec := range rs.Rules {
				result, err := operation.Replace(ctx, doc, ruleFromSpec(spec))
				if err != nil {
					return errors.Errorf("rule %d (%q): %w", i, spec.Old, err)
				}
				logPass(ctx, log.PassOperation{
					Pattern: spec.Old,
					Scope:   result.Scope,
					Deck:    deckPath,
				}, result)
				report.Add(spec.Old, result)
			}

			status.NewRenderer(*zerolog.Ctx(ctx)).Render(report)

			outPath := deckPath
			if rs.Output != "" {
				outPath = rs.Output
			}
			if *ro.OutputPath != "" {
				outPath = *ro.OutputPath
			}
			if err := deck.Save(ctx, outPath, doc); err != nil {
				return errors.Errorf("saving deck: %w", err)
			}
			console.Successf("saved %s", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&rulesFile, "rules", "r", ".slidetext.yaml", "rule file path")

	return cmd
}

// ruleFromSpec converts a parsed rule-file entry into an orchestrator rule.
func ruleFromSpec(spec config.RuleSpec) operation.Rule {
	return operation.Rule{
		Old: spec.Old,
		New: spec.New,
		Match: match.Options{
			Literal:    spec.Literal,
			IgnoreCase: spec.IgnoreCase,
			Multiline:  spec.Multiline,
			DotAll:     spec.DotAll,
		},
		Slide:     spec.Slide,
		AllSlides: spec.AllSlides,
		ShapeGlob: spec.Shapes,
		Warn:      spec.WarnEnabled(),
	}
}
