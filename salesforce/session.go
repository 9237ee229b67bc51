package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Session holds the credentials for REST calls against one org.
type Session struct {
	InstanceURL string
	AccessToken string
}

// SessionLoader obtains a Session.
type SessionLoader interface {
	LoadSession(ctx context.Context) (*Session, error)
}

// StaticSession is a SessionLoader returning a fixed session.
type StaticSession Session

// LoadSession returns the static session.
func (s StaticSession) LoadSession(ctx context.Context) (*Session, error) {
	sess := Session(s)
	return &sess, nil
}

// RunFunc runs an external command and returns its standard output.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// CLISessionLoader reuses the session of an org authenticated with the
// Salesforce CLI (`sf org login web`).
type CLISessionLoader struct {
	// TargetOrg is the CLI alias or username. Empty uses the CLI default org.
	TargetOrg string

	// Run executes the CLI. Defaults to os/exec.
	Run RunFunc
}

// LoadSession runs `sf org display --json` and reads the instance URL and
// access token from its output.
func (l *CLISessionLoader) LoadSession(ctx context.Context) (*Session, error) {
	args := []string{"org", "display", "--json"}
	if l.TargetOrg != "" {
		args = append(args, "--target-org", l.TargetOrg)
	}

	run := l.Run
	if run == nil {
		run = execCommand
	}

	out, err := run(ctx, "sf", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get org info from sf CLI (authenticate with `sf org login web`): %w", err)
	}

	var payload struct {
		Result struct {
			InstanceURL string `json:"instanceUrl"`
			AccessToken string `json:"accessToken"`
		} `json:"result"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse sf CLI output: %w", err)
	}
	if payload.Result.InstanceURL == "" || payload.Result.AccessToken == "" {
		return nil, fmt.Errorf("sf CLI output is missing instanceUrl or accessToken")
	}

	return &Session{
		InstanceURL: strings.TrimRight(payload.Result.InstanceURL, "/"),
		AccessToken: payload.Result.AccessToken,
	}, nil
}

func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}
