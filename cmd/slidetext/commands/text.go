package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/slidetext/cmd/slidetext/opts"
	"github.com/walteh/slidetext/pkg/deck"
	"github.com/walteh/slidetext/pkg/text"
)

// NewTextCmd creates a new text command
func NewTextCmd(ro *opts.RootOpts) *cobra.Command {
	var slideIndex int

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Print the flattened paragraph text of a deck",
		Long: `Text prints each paragraph's visible text exactly as the matcher sees
it: one contiguous string per paragraph, regardless of how the text is
chunked into runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "text").Logger().WithContext(ctx)

			doc, err := deck.Load(ctx, ro.Deck())
			if err != nil {
				return errors.Errorf("loading deck: %w", err)
			}

			if cmd.Flags().Changed("slide") {
				slide, err := doc.Slide(slideIndex)
				if err != nil {
					return errors.Errorf("resolving slide: %w", err)
				}
				printSlideText(cmd, slideIndex, slide)
				return nil
			}

			for i, slide := range doc.Slides() {
				printSlideText(cmd, i+1, slide)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&slideIndex, "slide", 0, "only print this 1-based slide")

	return cmd
}

// printSlideText prints one slide's paragraphs as the matcher sees them.
func printSlideText(cmd *cobra.Command, index int, slide *deck.Slide) {
	fmt.Fprintf(cmd.OutOrStdout(), "[slide %d]\n", index)
	for _, shape := range slide.Shapes() {
		for _, para := range shape.Paragraphs() {
			flat := text.Flatten(para.Runs())
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", flat.Text)
		}
	}
}
