package commands

import (
	"context"
	"fmt"
)

// Validate checks the declarations and every configured target without
// writing files
func (c *Controller) Validate(ctx context.Context) error {
	p, err := c.loadProject()
	if err != nil {
		return err
	}
	s, err := p.extract(ctx, c.logger())
	if err != nil {
		return report(c.out(), err)
	}
	if len(p.config.Targets) > 0 {
		generators, err := p.generators()
		if err != nil {
			return err
		}
		if _, err := p.pipeline(c.logger()).Render(ctx, s, generators); err != nil {
			return report(c.out(), err)
		}
	}
	fmt.Fprintf(c.out(), "%s %s valid\n", green("✓"), plural(s.Len(), "entity", "entities"))
	return nil
}
