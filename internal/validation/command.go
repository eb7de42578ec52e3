package validation

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const defaultCommandTimeout = 5 * time.Minute

// CommandValidator runs an external metadata validator. The metadata and
// documentation paths are appended to Command; a zero exit status means the
// file is valid.
type CommandValidator struct {
	Command []string
	// Timeout defaults to five minutes.
	Timeout time.Duration
}

// Validate runs the command and reports its combined output.
func (cv CommandValidator) Validate(metadataPath, documentationPath string) Result {
	if len(cv.Command) == 0 {
		return Result{Output: "no validator command configured"}
	}
	timeout := cv.Timeout
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	args := append(append([]string{}, cv.Command[1:]...), metadataPath, documentationPath)
	cmd := exec.CommandContext(ctx, cv.Command[0], args...)
	cmd.Env = cmd.Environ()

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	output := strings.TrimSpace(out.String())
	if err != nil {
		if output == "" {
			output = fmt.Sprintf("validator exited with error: %v", err)
		}
		return Result{Output: output}
	}
	return Result{Valid: true, Output: output}
}
