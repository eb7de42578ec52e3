package checks

import (
	"fmt"

	"github.com/airbytehq/connectors-qa/internal/connector"
)

// CheckConnectorIconIsAvailable requires icon.svg in the code directory.
type CheckConnectorIconIsAvailable struct{}

var _ Check = (*CheckConnectorIconIsAvailable)(nil)

func (*CheckConnectorIconIsAvailable) Name() string { return "Connectors must have an icon" }

func (*CheckConnectorIconIsAvailable) Description() string {
	return fmt.Sprintf("Each connector must have an icon available in at the root of the connector code directory. It must be an SVG file named `%s`.", connector.IconFileName)
}

func (*CheckConnectorIconIsAvailable) Category() Category { return CategoryAssets }

func (*CheckConnectorIconIsAvailable) AppliesTo() []connector.Language { return connector.AllLanguages }

func (*CheckConnectorIconIsAvailable) Required() bool { return true }

func (ch *CheckConnectorIconIsAvailable) Check(c *connector.Connector) (*CheckResult, error) {
	if !fileExists(c.IconPath) {
		return fail(ch, c, fmt.Sprintf("Icon file %s is missing", displayPath(c.IconPath))), nil
	}
	return pass(ch, c, "Icon file exists"), nil
}
