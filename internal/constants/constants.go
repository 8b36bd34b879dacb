// Package constants holds names and defaults shared by the config
// package and the commands.
package constants

// AppName names the config directory and the local config file.
const AppName = "checkout-ago"

// Backends
const (
	// BackendGoGit reads history and checks out with go-git.
	BackendGoGit = "gogit"

	// BackendGitCLI runs the git executable.
	BackendGitCLI = "gitcli"
)

// Date fields compared against the resolved instant.
const (
	DateCommitter = "committer"
	DateAuthor    = "author"
)

// Output formats for the jump plan.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Defaults applied when neither flags nor config set a value.
const (
	DefaultBackend   = BackendGoGit
	DefaultDateField = DateCommitter
	DefaultOutput    = OutputText
)
