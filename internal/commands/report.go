package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/okra-platform/modelgen/internal/schema"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// ErrInvalidModels is returned after the problems of a run were reported
var ErrInvalidModels = errors.New("model declarations have problems")

// report prints every collected failure of err. Collected failures are
// replaced by ErrInvalidModels since they were already shown; other
// errors are returned unchanged.
func report(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	var errs schema.Errors
	if !errors.As(err, &errs) {
		return err
	}
	fmt.Fprintf(w, "%s %s\n", red("✗"), plural(len(errs), "problem"))
	for _, e := range errs {
		fmt.Fprintf(w, "  %s %s\n", red("-"), e)
	}
	return fmt.Errorf("%w: %s", ErrInvalidModels, plural(len(errs), "problem"))
}

// plural formats a count with its noun; many defaults to one plus "s"
func plural(n int, one string, many ...string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	if len(many) > 0 {
		return fmt.Sprintf("%d %s", n, many[0])
	}
	return fmt.Sprintf("%d %ss", n, one)
}
