package checks

// Status is the three-valued outcome of a check.
type Status string

const (
	// StatusPassed indicates the connector satisfies the check.
	StatusPassed Status = "Passed"
	// StatusFailed indicates the connector violates the check.
	StatusFailed Status = "Failed"
	// StatusSkipped indicates the check does not apply to the connector's language.
	StatusSkipped Status = "Skipped"
)

// Emoji returns the marker used when printing a result.
func (s Status) Emoji() string {
	switch s {
	case StatusPassed:
		return "✅"
	case StatusFailed:
		return "❌"
	default:
		return "🔶"
	}
}

// Category groups checks in generated documentation.
type Category string

const (
	CategoryCodeQuality   Category = "code-quality"
	CategoryDocumentation Category = "documentation"
	CategoryAssets        Category = "assets"
	CategorySecurity      Category = "security"
)

// Categories lists every category in documentation order.
var Categories = []Category{
	CategoryCodeQuality,
	CategoryDocumentation,
	CategoryAssets,
	CategorySecurity,
}

// Title returns the human-readable category heading.
func (c Category) Title() string {
	switch c {
	case CategoryCodeQuality:
		return "📝 Code Quality"
	case CategoryDocumentation:
		return "📄 Documentation"
	case CategoryAssets:
		return "💼 Assets"
	case CategorySecurity:
		return "🔒 Security"
	default:
		return string(c)
	}
}
