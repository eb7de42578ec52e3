package validation

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandValidator(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	tests := []struct {
		name      string
		script    string
		wantValid bool
		want      string
	}{
		{"success", `echo "checked $0 $1"`, true, "checked meta.yaml doc.md"},
		{"failure with output", `echo "bad metadata" >&2; exit 1`, false, "bad metadata"},
		{"failure without output", `exit 3`, false, "exit status 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := CommandValidator{Command: []string{"sh", "-c", tt.script}}
			res := cv.Validate("meta.yaml", "doc.md")
			require.Equal(t, tt.wantValid, res.Valid)
			require.Contains(t, res.Output, tt.want)
		})
	}
}

func TestCommandValidator_NoCommand(t *testing.T) {
	res := CommandValidator{}.Validate("meta.yaml", "doc.md")
	require.False(t, res.Valid)
	require.Contains(t, res.Output, "no validator command")
}
