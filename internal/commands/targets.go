package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/okra-platform/modelgen/internal/codegen"
)

// Targets lists the supported target languages
func (c *Controller) Targets(ctx context.Context) error {
	tw := tabwriter.NewWriter(c.out(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LANGUAGE\tEXTENSION\tACCESSORS")
	for _, lang := range codegen.DefaultRegistry.Languages() {
		g, err := codegen.DefaultRegistry.Get(lang, codegen.Options{})
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", lang, g.FileExtension(), g.Profile().AccessorCasing)
	}
	return tw.Flush()
}
