// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package telemetry

import (
	"encoding/hex"
	"github.com/google/uuid"
	"github.com/hchauvin/sputnik/pkg/invocation"
	"github.com/hchauvin/sputnik/pkg/machineid"
	"github.com/spf13/afero"
	"golang.org/x/crypto/blake2b"
	"runtime"
	"time"
)

// Session is the telemetry event sent for one invocation of the CLI.
type Session struct {
	SessionID  string             `json:"session_id" bson:"session_id" yaml:"session_id"`
	MachineID  string             `json:"machine_id" bson:"machine_id" yaml:"machine_id"`
	Command    invocation.Command `json:"command" bson:"command" yaml:"command"`
	CLIName    string             `json:"cli_name" bson:"cli_name" yaml:"cli_name"`
	CLIVersion string             `json:"cli_version" bson:"cli_version" yaml:"cli_version"`
	Platform   Platform           `json:"platform" bson:"platform" yaml:"platform"`
	CwdHash    string             `json:"cwd_hash" bson:"cwd_hash" yaml:"cwd_hash"`
	Started    time.Time          `json:"started" bson:"started" yaml:"started"`
}

// Platform describes where the CLI runs.
type Platform struct {
	OS   string `json:"os" bson:"os" yaml:"os"`
	Arch string `json:"arch" bson:"arch" yaml:"arch"`
	// ContinuousIntegration is the name of the CI vendor, empty
	// outside of CI.
	ContinuousIntegration string `json:"continuous_integration" bson:"continuous_integration" yaml:"continuous_integration"`
}

// NewSession builds the telemetry event for an invocation.  The machine
// id is read from, or persisted to, MachineIDPath.
func (b *Builder) NewSession(state interface{}) (*Session, error) {
	cmd, err := b.SerializeInvocation(state)
	if err != nil {
		return nil, err
	}

	machineIDPath, err := b.MachineIDPath()
	if err != nil {
		return nil, err
	}
	fs := b.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	machineID, err := machineid.Get(fs, machineIDPath)
	if err != nil {
		b.logger().Debug(logDomain, "machine id is not persisted: %v", err)
	}

	name, version := b.ToolIdentity()
	return &Session{
		SessionID:  uuid.New().String(),
		MachineID:  machineID,
		Command:    *cmd,
		CLIName:    name,
		CLIVersion: version,
		Platform: Platform{
			OS:                    runtime.GOOS,
			Arch:                  runtime.GOARCH,
			ContinuousIntegration: detectCI(b.getenv),
		},
		CwdHash: b.cwdHash(),
		Started: time.Now().UTC(),
	}, nil
}

func (b *Builder) cwdHash() string {
	if b.Getwd == nil {
		return ""
	}
	cwd, err := b.Getwd()
	if err != nil {
		return ""
	}
	return hashPath(cwd)
}

func hashPath(path string) string {
	sum := blake2b.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}

var ciVendors = []struct {
	env    string
	vendor string
}{
	{"GITHUB_ACTIONS", "GitHub Actions"},
	{"GITLAB_CI", "GitLab CI"},
	{"CIRCLECI", "CircleCI"},
	{"TRAVIS", "Travis CI"},
	{"BUILDKITE", "Buildkite"},
	{"TF_BUILD", "Azure Pipelines"},
	{"JENKINS_URL", "Jenkins"},
	{"TEAMCITY_VERSION", "TeamCity"},
	{"CODEBUILD_BUILD_ID", "AWS CodeBuild"},
	{"CI", "unknown"},
}

func detectCI(getenv func(string) string) string {
	for _, ci := range ciVendors {
		if getenv(ci.env) != "" {
			return ci.vendor
		}
	}
	return ""
}
