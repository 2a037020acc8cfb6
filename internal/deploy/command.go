package deploy

import "strings"

// Command is one invocation of the external versioning tool.
type Command struct {
	Name string
	Args []string
}

// String renders the command line as it would be typed.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Options describes one publish of the documentation.
type Options struct {
	Tool       string // versioning tool binary, "mike"
	Version    string
	Alias      string
	Push       bool
	SetDefault bool
	Remote     string
	Branch     string
	Title      string
}

// DeployCommand builds `<tool> deploy --update-aliases <version> <alias> [--push]`.
func DeployCommand(o Options) Command {
	args := []string{"deploy", "--update-aliases", o.Version, o.Alias}
	if o.Push {
		args = append(args, "--push")
	}
	args = append(args, targetArgs(o)...)
	if o.Title != "" {
		args = append(args, "--title", o.Title)
	}
	return Command{Name: o.Tool, Args: args}
}

// SetDefaultCommand builds `<tool> set-default <alias> [--push]`.
func SetDefaultCommand(o Options) Command {
	args := []string{"set-default", o.Alias}
	if o.Push {
		args = append(args, "--push")
	}
	args = append(args, targetArgs(o)...)
	return Command{Name: o.Tool, Args: args}
}

func targetArgs(o Options) []string {
	var args []string
	if o.Remote != "" {
		args = append(args, "--remote", o.Remote)
	}
	if o.Branch != "" {
		args = append(args, "--branch", o.Branch)
	}
	return args
}
