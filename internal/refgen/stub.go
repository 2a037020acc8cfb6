package refgen

import "git.home.luguber.info/inful/docops/internal/modules"

// Stub renders the page for entry. A non-empty summary adds a heading and
// the summary line above the directive.
func Stub(entry modules.Entry, summary string) string {
	directive := "::: " + entry.Ident
	if summary == "" {
		return directive
	}
	return "# " + entry.Name() + "\n\n_" + summary + "_\n\n---\n\n" + directive
}
