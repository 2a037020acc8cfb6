package errors

// Category groups failures by what went wrong, and decides the exit status.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryValidation Category = "validation"
	CategoryNotFound   Category = "not_found"
	CategoryExternal   Category = "external"
	CategoryGit        Category = "git"
	CategoryFileSystem Category = "filesystem"
	CategoryGenerate   Category = "generate"
	CategoryInternal   Category = "internal"
)

// exitCodes lists the categories that do not exit with the generic status 1.
var exitCodes = map[Category]int{
	CategoryValidation: 2,
	CategoryConfig:     7,
	CategoryExternal:   8,
	CategoryGit:        8,
	CategoryInternal:   10,
	CategoryFileSystem: 11,
	CategoryGenerate:   11,
}

// ExitCode is the process exit status for an error of this category.
func (c Category) ExitCode() int {
	if code, ok := exitCodes[c]; ok {
		return code
	}
	return 1
}

// Severity tells the CLI how loudly to report an error.
type Severity string

const (
	SeverityFatal   Severity = "fatal"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning" // the run carried on
)

// Fields are structured values logged alongside a classified error.
type Fields map[string]any
