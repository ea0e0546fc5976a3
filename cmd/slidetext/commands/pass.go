package commands

import (
	"context"

	"github.com/walteh/slidetext/pkg/log"
	"github.com/walteh/slidetext/pkg/operation"
)

// logPass renders one rule's pass through the console logger: the pass
// header, one line per shape, then the pass summary.
func logPass(ctx context.Context, pass log.PassOperation, result *operation.Result) {
	console := log.FromContext(ctx)

	console.StartPassOperation(ctx, pass)
	for _, sc := range result.Shapes {
		console.LogShapeOperation(ctx, log.ShapeOperation{
			Slide:        sc.Slide,
			Shape:        sc.Shape,
			Paragraphs:   sc.Paragraphs,
			Replacements: sc.Replacements,
			Skipped:      sc.Skipped,
		})
	}
	console.EndPassOperation(ctx)
}
