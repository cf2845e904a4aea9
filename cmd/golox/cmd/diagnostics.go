package cmd

import (
	"fmt"
	"io"

	"github.com/golox-lang/golox/internal/errs"
)

// printStaticErrors reports every error in staticErrs to w, per §4.9: under
// --verbose, the caret-annotated Format/FormatAll form (source context plus
// a column marker); otherwise the plain one-line "[line N] Error: message"
// form (errs.List.Error).
func printStaticErrors(w io.Writer, staticErrs *errs.List, src string) {
	if verbose {
		fmt.Fprint(w, staticErrs.FormatAll(src))
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, staticErrs.Error())
}
