package checks

import (
	"errors"
	"testing"

	"github.com/airbytehq/connectors-qa/internal/connector"
	"github.com/airbytehq/connectors-qa/internal/validation"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func allEnv(string) (string, bool) { return "set", true }

func TestValidateMetadata(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := NewMockMetadataValidator(ctrl)

		c := newConnector(t, "source-fauna", connector.LanguagePython)
		withMetadata(t, c, faunaMetadata)
		writeFile(t, c.DocumentationFilePath, faunaDocumentation)

		validator.EXPECT().Validate(c.MetadataFilePath, c.DocumentationFilePath).Return(validation.Result{Valid: true})

		check := &ValidateMetadata{Validator: validator, RequiredEnv: DefaultRequiredEnv, LookupEnv: allEnv}
		res, err := check.Check(c)
		require.NoError(t, err)
		require.Equal(t, StatusPassed, res.Status)
		require.Equal(t, "Metadata file is valid", res.Message)
	})

	t.Run("invalid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := NewMockMetadataValidator(ctrl)

		c := newConnector(t, "source-fauna", connector.LanguagePython)
		withMetadata(t, c, faunaMetadata)
		writeFile(t, c.DocumentationFilePath, faunaDocumentation)

		validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(validation.Result{Output: "/data: missing property 'definitionId'\n"})

		check := &ValidateMetadata{Validator: validator, LookupEnv: allEnv}
		res, err := check.Check(c)
		require.NoError(t, err)
		require.Equal(t, StatusFailed, res.Status)
		require.Equal(t, "Metadata file is invalid: /data: missing property 'definitionId'", res.Message)
	})

	t.Run("missing metadata file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := NewMockMetadataValidator(ctrl)

		c := newConnector(t, "source-fauna", connector.LanguagePython)
		writeFile(t, c.DocumentationFilePath, faunaDocumentation)

		res, err := (&ValidateMetadata{Validator: validator, LookupEnv: allEnv}).Check(c)
		require.NoError(t, err)
		require.Equal(t, StatusFailed, res.Status)
		require.Contains(t, res.Message, "metadata.yaml file is missing")
	})

	t.Run("missing documentation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		validator := NewMockMetadataValidator(ctrl)

		c := newConnector(t, "source-fauna", connector.LanguagePython)
		withMetadata(t, c, faunaMetadata)

		res, err := (&ValidateMetadata{Validator: validator, LookupEnv: allEnv}).Check(c)
		require.NoError(t, err)
		require.Equal(t, StatusFailed, res.Status)
		require.Contains(t, res.Message, "User facing documentation file")
	})

	t.Run("missing environment variable", func(t *testing.T) {
		c := newConnector(t, "source-fauna", connector.LanguagePython)
		lookup := func(name string) (string, bool) { return "", name != "DOCKERHUB_PASSWORD" }

		_, err := (&ValidateMetadata{RequiredEnv: DefaultRequiredEnv, LookupEnv: lookup}).Check(c)

		var prereq *PrerequisiteError
		require.True(t, errors.As(err, &prereq))
		require.Contains(t, prereq.Error(), "DOCKERHUB_PASSWORD")
	})

	t.Run("no validator", func(t *testing.T) {
		c := newConnector(t, "source-fauna", connector.LanguagePython)
		withMetadata(t, c, faunaMetadata)
		writeFile(t, c.DocumentationFilePath, faunaDocumentation)

		_, err := (&ValidateMetadata{LookupEnv: allEnv}).Check(c)
		var prereq *PrerequisiteError
		require.ErrorAs(t, err, &prereq)
	})
}
