package ecosystem

// builtinDescriptors returns the compiled-in descriptor set. This is the
// lowest-precedence registry layer; user and project descriptor files may
// shadow any entry by re-declaring its type key.
//
// Priorities are spaced by 10 so deployments can slot custom ecosystems
// between built-ins without renumbering.
func builtinDescriptors() []*Descriptor {
	return []*Descriptor{
		{
			Type:       "go",
			Name:       "Go",
			Priority:   10,
			Indicators: []string{"go.mod", "go.sum", "go.work"},
			Extensions: []string{".go"},
			Tools: ToolCommands{
				Install: "go mod download",
				Test:    "go test ./...",
				Build:   "go build ./...",
				Run:     "go run .",
				Version: "go version",
			},
			PackageManagers:       []string{"go"},
			DefaultPackageManager: "go",
		},
		{
			Type:       "rust",
			Name:       "Rust",
			Priority:   20,
			Indicators: []string{"Cargo.toml", "Cargo.lock"},
			Extensions: []string{".rs"},
			Tools: ToolCommands{
				Install: "cargo fetch",
				Test:    "cargo test",
				Build:   "cargo build",
				Run:     "cargo run",
				Version: "cargo --version",
			},
			PackageManagers:       []string{"cargo"},
			DefaultPackageManager: "cargo",
		},
		{
			Type:     "python",
			Name:     "Python",
			Priority: 30,
			Indicators: []string{
				"pyproject.toml",
				"setup.py",
				"setup.cfg",
				"requirements.txt",
				"Pipfile",
				"poetry.lock",
				"uv.lock",
			},
			Extensions: []string{".py", ".pyi"},
			Tools: ToolCommands{
				Install: "{pm} install",
				Test:    "{pm} run pytest",
				Build:   "{pm} build",
				Run:     "{pm} run python",
				Version: "python --version",
			},
			PackageManagers:       []string{"uv", "poetry", "pipenv", "pip"},
			DefaultPackageManager: "pip",
		},
		{
			Type:     "jvm",
			Name:     "JVM",
			Priority: 40,
			Indicators: []string{
				"pom.xml",
				"build.gradle",
				"build.gradle.kts",
				"settings.gradle",
				"settings.gradle.kts",
				"mvnw",
				"gradlew",
			},
			Extensions: []string{".java", ".kt", ".scala"},
			Tools: ToolCommands{
				Install: "{pm} install",
				Test:    "{pm} test",
				Build:   "{pm} package",
				Run:     "{pm} exec",
				Version: "java -version",
			},
			PackageManagers:       []string{"mvn", "gradle"},
			DefaultPackageManager: "mvn",
		},
		{
			Type:       "ruby",
			Name:       "Ruby",
			Priority:   50,
			Indicators: []string{"Gemfile", "Gemfile.lock", "Rakefile"},
			Extensions: []string{".rb"},
			Tools: ToolCommands{
				Install: "bundle install",
				Test:    "bundle exec rake test",
				Build:   "bundle exec rake build",
				Run:     "bundle exec ruby",
				Version: "ruby --version",
			},
			PackageManagers:       []string{"bundler"},
			DefaultPackageManager: "bundler",
		},
		{
			Type:       "php",
			Name:       "PHP",
			Priority:   60,
			Indicators: []string{"composer.json", "composer.lock"},
			Extensions: []string{".php"},
			Tools: ToolCommands{
				Install: "composer install",
				Test:    "composer test",
				Build:   "composer build",
				Run:     "php",
				Version: "php --version",
			},
			PackageManagers:       []string{"composer"},
			DefaultPackageManager: "composer",
		},
		{
			// JavaScript is checked last among the built-ins: many polyglot
			// repos carry a package.json purely for tooling, and the primary
			// ecosystem's manifest should win in single-answer detection.
			Type:     "javascript",
			Name:     "JavaScript/TypeScript",
			Priority: 70,
			Indicators: []string{
				"package.json",
				"package-lock.json",
				"yarn.lock",
				"pnpm-lock.yaml",
				"bun.lockb",
				"tsconfig.json",
			},
			Extensions: []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"},
			Tools: ToolCommands{
				Install: "{pm} install",
				Test:    "{pm} test",
				Build:   "{pm} run build",
				Run:     "{pm} start",
				Version: "node --version",
			},
			PackageManagers:       []string{"pnpm", "yarn", "bun", "npm"},
			DefaultPackageManager: "npm",
		},
	}
}
