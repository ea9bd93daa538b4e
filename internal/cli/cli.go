// Package cli implements the perftrack administration commands.
package cli

import "github.com/alecthomas/kong"

type CLI struct {
	Version  kong.VersionFlag
	EnvFile  []string `help:"Env files applied before reading the environment." type:"path" name:"env-file"`
	DataDir  string   `help:"Override DATA_DIR." type:"path"`
	LogLevel string   `help:"Override LOG_LEVEL." default:"warn"`

	Fetch          FetchCmd          `cmd:"" help:"Print the stored document."`
	Save           SaveCmd           `cmd:"" help:"Merge a JSON document into the store."`
	Leaderboard    LeaderboardCmd    `cmd:"" help:"Show employee standings."`
	AutoPopulate   AutoPopulateCmd   `cmd:"" name:"autopopulate" help:"Create today's tasks from active templates."`
	SetPassword    SetPasswordCmd    `cmd:"" help:"Replace the admin password."`
	VerifyPassword VerifyPasswordCmd `cmd:"" help:"Check a password against the stored admin credential."`
}

// Parser builds the kong parser for grammar.
func Parser(grammar *CLI, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("perfctl"),
		kong.Description("Administer a perftrack document store."),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	}, opts...)
	return kong.New(grammar, opts...)
}
