package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID    = "run_id"
	KeyCommand  = "command"
	KeyVersion  = "version"
	KeyAlias    = "alias"
	KeyExitCode = "exit_code"
	KeyPath     = "path"
	KeyFile     = "file"
	KeyModule   = "module"
	KeyDocPath  = "doc_path"
	KeyCount    = "count"
	KeyCommit   = "commit"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr   { return slog.String(KeyRunID, id) }
func Command(c string) slog.Attr  { return slog.String(KeyCommand, c) }
func Version(v string) slog.Attr  { return slog.String(KeyVersion, v) }
func Alias(a string) slog.Attr    { return slog.String(KeyAlias, a) }
func ExitCode(code int) slog.Attr { return slog.Int(KeyExitCode, code) }
func Path(p string) slog.Attr     { return slog.String(KeyPath, p) }
func File(f string) slog.Attr     { return slog.String(KeyFile, f) }
func Module(m string) slog.Attr   { return slog.String(KeyModule, m) }
func DocPath(p string) slog.Attr  { return slog.String(KeyDocPath, p) }
func Count(n int) slog.Attr       { return slog.Int(KeyCount, n) }
func Commit(sha string) slog.Attr { return slog.String(KeyCommit, sha) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
