package commands

import (
	"context"
	"fmt"
)

// Schema prints the canonical schema document of the declarations
func (c *Controller) Schema(ctx context.Context) error {
	p, err := c.loadProject()
	if err != nil {
		return err
	}
	s, err := p.extract(ctx, c.logger())
	if err != nil {
		return report(c.out(), err)
	}
	doc, err := encodeDocument(s, p.config.Schema.Format)
	if err != nil {
		return err
	}
	if _, err := c.out().Write(doc); err != nil {
		return fmt.Errorf("failed to write schema document: %w", err)
	}
	return nil
}
