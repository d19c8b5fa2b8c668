package lqcheck

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // All changelogs follow the conventions
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitViolationsFound = 4  // At least one convention violation was reported
	ExitMalformedFile   = 5  // A changelog could not be read or parsed
	ExitConfigError     = 10 // Invalid configuration or glob pattern
)

const (
	// RootElement is the root element name identifying a changelog document.
	RootElement = "databaseChangeLog"

	// AttrLogicalFilePath is the root attribute recording the changelog's canonical location.
	AttrLogicalFilePath = "logicalFilePath"

	// ChangeSetElement is the element name of a single change entry.
	ChangeSetElement = "changeSet"

	// AttrContext, AttrAuthor and AttrID are the changeSet attributes the checker reads.
	AttrContext = "context"
	AttrAuthor  = "author"
	AttrID      = "id"

	// MasterFileName is always checked against its full relative path,
	// even inside a migration folder.
	MasterFileName = "_master.xml"

	// MigrationMarkerFileName marks the parent of versioned migration folders.
	MigrationMarkerFileName = "initDb.xml"

	// MigrationFolderPrefix is the name prefix of a versioned migration folder.
	MigrationFolderPrefix = "v"

	// DefaultResourceDirectory mirrors the Maven default resource root.
	DefaultResourceDirectory = "src/main/resources"

	// DefaultInclude selects every file; the scanner applies it to folders without includes.
	DefaultInclude = "**"

	// DefaultChangelogInclude is the CLI default when nothing configures includes.
	DefaultChangelogInclude = "**/*.xml"

	// EnvResources lists resource directories, separated by the OS path list separator.
	EnvResources = "LQCHECK_RESOURCES"
)
