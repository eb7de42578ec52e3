package checks

import "slices"

// RegistryOptions configures the checks that need collaborators.
type RegistryOptions struct {
	MetadataValidator MetadataValidator
	// RequiredEnv defaults to DefaultRequiredEnv when nil.
	RequiredEnv []string
	LookupEnv   func(string) (string, bool)
}

// Registry returns one instance of every enabled check in report order.
// Build it once at start-up and hand it to the runner.
func Registry(opts RegistryOptions) []Check {
	requiredEnv := opts.RequiredEnv
	if requiredEnv == nil {
		requiredEnv = DefaultRequiredEnv
	}
	return []Check{
		&ValidateMetadata{
			Validator:   opts.MetadataValidator,
			RequiredEnv: slices.Clone(requiredEnv),
			LookupEnv:   opts.LookupEnv,
		},
		&CheckDocumentationExists{},
		&CheckDocumentationStructure{},
		&CheckChangelogEntry{},
		&CheckMigrationGuide{},
		&CheckConnectorIconIsAvailable{},
		&CheckConnectorUsesHTTPSOnly{},
		&CheckConnectorUsesPoetry{},
		&CheckConnectorUsesPythonBaseImage{},
		&CheckPublishToPyPiIsEnabled{},
		&CheckConnectorLicense{},
		&CheckVersionFollowsSemver{},
	}
}

// Without returns a new list omitting checks whose name is in names.
func Without(registry []Check, names []string) []Check {
	out := make([]Check, 0, len(registry))
	for _, c := range registry {
		if !slices.Contains(names, c.Name()) {
			out = append(out, c)
		}
	}
	return out
}

// ByCategory groups checks by category, keeping registry order inside each
// group. Categories without checks are omitted.
func ByCategory(registry []Check) map[Category][]Check {
	grouped := make(map[Category][]Check)
	for _, c := range registry {
		grouped[c.Category()] = append(grouped[c.Category()], c)
	}
	return grouped
}
