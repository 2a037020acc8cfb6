// Package refgen generates reference stub pages for every module of a source
// tree, together with a literate-nav summary linking them.
//
// Each stub holds a single `::: <ident>` directive that the documentation
// generator expands into the rendered API reference. The generated tree is
// tracked by a manifest so that regeneration only rewrites changed pages and
// removes pages whose module has gone away.
package refgen
