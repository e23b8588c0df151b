// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

package dist

import (
	"bytes"
	"context"
	"github.com/hchauvin/sputnik/pkg/config"
	"github.com/hchauvin/sputnik/pkg/log"
	"github.com/hchauvin/sputnik/pkg/log/interactive"
	"github.com/hchauvin/sputnik/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func testConfig(workspaceDir string) *config.Config {
	cfg := &config.Config{
		OutputRoot:   "target",
		WorkspaceDir: workspaceDir,
		Tools:        map[string]config.ToolInfo{},
	}
	cfg.SetLogger(&log.Logger{Writer: ioutil.Discard})
	return cfg
}

func TestBuildSpec(t *testing.T) {
	cfg := testConfig("/workspace")
	spec, err := BuildSpec(cfg, LinuxArm64, &Options{
		Info: version.Info{Name: "sputnik", Version: "1.2.3"},
	})
	require.NoError(t, err)

	assert.Equal(t, "go", spec.Name)
	assert.Equal(t, "/workspace", spec.Dir)
	assert.Equal(t, []string{"CGO_ENABLED=0", "GOOS=linux", "GOARCH=arm64"}, spec.Env)
	assert.Equal(t, "build", spec.Args[0])
	assert.Contains(t, spec.Args, "-trimpath")
	assert.Equal(t, DefaultPackage, spec.Args[len(spec.Args)-1])

	ldflags := argAfter(t, spec.Args, "-ldflags")
	assert.Contains(t, ldflags, "-X github.com/hchauvin/sputnik/pkg/version.Version=1.2.3")
	assert.Contains(t, ldflags, "-X github.com/hchauvin/sputnik/pkg/version.Profile=release")

	assert.Equal(t,
		filepath.Join("/workspace", "target", "aarch64-unknown-linux-gnu", "sputnik"),
		argAfter(t, spec.Args, "-o"))
}

func TestBuildSpecWindows(t *testing.T) {
	cfg := testConfig("/workspace")
	spec, err := BuildSpec(cfg, WindowsAmd64, &Options{Package: "./cmd/other"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(argAfter(t, spec.Args, "-o"), "sputnik.exe"))
	assert.Equal(t, "./cmd/other", spec.Args[len(spec.Args)-1])
}

func TestBuildSpecToolPath(t *testing.T) {
	cfg := testConfig("/workspace")
	cfg.Tools[string(config.Go)] = config.ToolInfo{Path: "./bin/go"}
	spec, err := BuildSpec(cfg, LinuxAmd64, &Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/workspace", "bin", "go"), spec.Name)
}

func TestStripSpec(t *testing.T) {
	cfg := testConfig("/workspace")
	spec, err := StripSpec(cfg, "/workspace/target/sputnik")
	require.NoError(t, err)
	assert.Equal(t, "strip", spec.Name)
	assert.Equal(t, []string{"/workspace/target/sputnik"}, spec.Args)
}

func TestStripSkipped(t *testing.T) {
	cfg := testConfig("/workspace")
	cfg.Tools[string(config.Strip)] = config.ToolInfo{Path: "/does/not/exist"}
	assert.NoError(t, Strip(context.Background(), cfg, DarwinArm64, "/workspace/target/sputnik"))
	assert.NoError(t, Strip(context.Background(), cfg, WindowsAmd64, "/workspace/target/sputnik.exe"))
}

const fakeGo = `#!/bin/sh
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then
    echo "$GOOS/$GOARCH" > "$2"
  fi
  shift
done
`

const fakeStrip = `#!/bin/sh
echo "$1" >> "$(dirname "$0")/stripped.txt"
`

const failingGo = `#!/bin/sh
echo "cannot compile" >&2
exit 1
`

func writeScript(t *testing.T, path, content string) {
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0755))
}

func TestDist(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	dir, err := ioutil.TempDir("", "sputnik_dist")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	writeScript(t, filepath.Join(dir, "go.sh"), fakeGo)
	writeScript(t, filepath.Join(dir, "strip.sh"), fakeStrip)

	var buf bytes.Buffer
	cfg := testConfig(dir)
	cfg.SetLogger(&log.Logger{Writer: &buf})
	cfg.Tools[string(config.Go)] = config.ToolInfo{Path: filepath.Join(dir, "go.sh")}
	cfg.Tools[string(config.Strip)] = config.ToolInfo{Path: filepath.Join(dir, "strip.sh")}

	paths, err := Dist(context.Background(), cfg, []Target{LinuxAmd64, DarwinArm64, WindowsAmd64}, &Options{
		Parallelism: 2,
	})
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for i, expected := range []string{"linux/amd64", "darwin/arm64", "windows/amd64"} {
		b, err := ioutil.ReadFile(paths[i])
		require.NoError(t, err)
		assert.Equal(t, expected, strings.TrimSpace(string(b)))
	}

	stripped, err := ioutil.ReadFile(filepath.Join(dir, "stripped.txt"))
	require.NoError(t, err)
	assert.Equal(t, paths[0], strings.TrimSpace(string(stripped)))
}

func TestDistBuildFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	dir, err := ioutil.TempDir("", "sputnik_dist")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	writeScript(t, filepath.Join(dir, "go.sh"), failingGo)
	cfg := testConfig(dir)
	cfg.Tools[string(config.Go)] = config.ToolInfo{Path: filepath.Join(dir, "go.sh")}

	_, err = Dist(context.Background(), cfg, []Target{LinuxAmd64}, &Options{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "could not build sputnik")
}

func argAfter(t *testing.T, args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("flag %s not found in %v", flag, args)
	return ""
}

func TestDistEvents(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	dir, err := ioutil.TempDir("", "sputnik_dist")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	writeScript(t, filepath.Join(dir, "go.sh"), fakeGo)
	writeScript(t, filepath.Join(dir, "strip.sh"), fakeStrip)
	cfg := testConfig(dir)
	cfg.Tools[string(config.Go)] = config.ToolInfo{Path: filepath.Join(dir, "go.sh")}
	cfg.Tools[string(config.Strip)] = config.ToolInfo{Path: filepath.Join(dir, "strip.sh")}

	eventc := make(chan interface{}, 16)
	_, err = Dist(context.Background(), cfg, []Target{LinuxAmd64, WindowsAmd64}, &Options{
		Events: eventc,
	})
	require.NoError(t, err)
	close(eventc)

	stages := map[string][]string{}
	for e := range eventc {
		et := e.(interactive.SetStateEvent)
		stages[et.Name] = append(stages[et.Name], string(et.State)+":"+et.Stage)
	}
	assert.Equal(t, []string{"initial:", "started:building", "started:stripping", "completed:"}, stages[string(LinuxAmd64)])
	assert.Equal(t, []string{"initial:", "started:building", "completed:"}, stages[string(WindowsAmd64)])
}

func TestCopyAssets(t *testing.T) {
	dir, err := ioutil.TempDir("", "sputnik_dist")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "LICENSE"), []byte("MIT"), 0666))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "man"), 0777))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "docs", "man", "sputnik.1"), []byte("man"), 0666))

	cfg := testConfig(dir)
	cfg.Dist.Assets = []string{"LICENSE", "./docs"}

	binaryPath := filepath.Join(dir, "target", string(LinuxAmd64), "sputnik")
	require.NoError(t, os.MkdirAll(filepath.Dir(binaryPath), 0777))
	require.NoError(t, CopyAssets(cfg, binaryPath))

	b, err := ioutil.ReadFile(filepath.Join(filepath.Dir(binaryPath), "LICENSE"))
	require.NoError(t, err)
	assert.Equal(t, "MIT", string(b))
	b, err = ioutil.ReadFile(filepath.Join(filepath.Dir(binaryPath), "docs", "man", "sputnik.1"))
	require.NoError(t, err)
	assert.Equal(t, "man", string(b))
}

func TestCopyAssetsMissing(t *testing.T) {
	dir, err := ioutil.TempDir("", "sputnik_dist")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	cfg := testConfig(dir)
	cfg.Dist.Assets = []string{"MISSING"}
	err = CopyAssets(cfg, filepath.Join(dir, "target", "sputnik"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "could not copy asset")
}
