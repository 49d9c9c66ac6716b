package pkgmgr

// Source tags which step of the resolution chain produced a Choice.
type Source string

const (
	// SourceEnv: the SCOPE_PACKAGE_MANAGER environment override.
	SourceEnv Source = "environment"

	// SourceProjectConfig: the project-local preference file.
	SourceProjectConfig Source = "project-config"

	// SourceManifestField: a manifest field naming the tool, e.g. the
	// packageManager field of package.json.
	SourceManifestField Source = "manifest-field"

	// SourceLockfile: presence of a tool-specific lock file.
	SourceLockfile Source = "lockfile"

	// SourceGlobalConfig: the user-global preference file.
	SourceGlobalConfig Source = "global-config"

	// SourceHostTool: the first ecosystem candidate found on PATH.
	SourceHostTool Source = "host-tool"

	// SourceDefault: the fixed ecosystem-appropriate fallback.
	SourceDefault Source = "fallback-default"
)

// Commands holds the rendered lifecycle commands for a resolved manager,
// expanded from the ecosystem's command templates. Empty when the directory's
// ecosystem is unknown.
type Commands struct {
	Install string
	Test    string
	Build   string
	Run     string
}

// Choice is the result of package-manager resolution for one directory.
type Choice struct {
	// Name is the resolved package manager, e.g. "pnpm".
	Name string

	// Source records which chain step decided the answer.
	Source Source

	// Commands are the ecosystem's lifecycle commands rendered for Name.
	Commands Commands
}
