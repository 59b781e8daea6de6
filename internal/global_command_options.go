package internal

type GlobalCommandOptions struct {
	// Cwd allows the user to override the current working directory, temporarily.
	// The root command will take care of cd'ing into that folder before your command
	// and cd'ing back to the original folder after the commands complete.
	Cwd string

	// EnableDebugLogging turns on debug logging for the command and the tools it launches.
	// It's enabled with `--debug`, for any command.
	EnableDebugLogging bool

	// when true, interactive prompts should behave as if the user selected the default value.
	// if there is no default value the prompt returns an error.
	NoPrompt bool

	// ConfigFile is an explicit configuration file, set with `--config`.
	ConfigFile string
}
