package tools

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dr-ninja/toolko/internal/prompt"
)

// Preflight verifies that every (variant, language) combination of every
// given tool resolves to an existing template. It runs the lookups
// concurrently and returns the first failure, so a broken deployment dies
// at startup instead of 500ing on the first affected request.
//
// Variants with a fixed language override are checked once, for that
// language only.
func Preflight(ctx context.Context, resolver *prompt.Resolver, catalog []*ToolConfig) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, tool := range catalog {
		for i := range tool.Variants {
			variant := &tool.Variants[i]
			languages := prompt.SupportedLanguages
			if variant.Language != "" {
				languages = []string{variant.Language}
			}
			for _, language := range languages {
				toolID, language := tool.ID, language
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					if _, err := resolver.Resolve(variant.PromptPath, language); err != nil {
						return fmt.Errorf("tool %q variant %q language %q: %w", toolID, variant.ID, language, err)
					}
					return nil
				})
			}
		}
	}
	return g.Wait()
}
