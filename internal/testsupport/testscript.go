// Package testsupport provides helpers for testscript-driven CLI tests.
package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/plannerhq/taskplanner/task"
)

var (
	buildOnce  sync.Once
	binaryPath string
	buildErr   error
)

// BuildCLI builds the taskplanner binary once and returns its path.
func BuildCLI(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "taskplanner-bin-")
		if err != nil {
			buildErr = err
			return
		}

		binaryPath = filepath.Join(binDir, "taskplanner")
		cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/taskplanner")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build taskplanner: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return binaryPath
}

// SetupScriptEnv configures common environment variables for testscript.
// Each script gets its own data directory under the script work dir.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TASKPLANNER", BuildCLI(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	dataDir := filepath.Join(env.WorkDir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	env.Setenv("TASKPLANNER_STORAGE_DIR", dataDir)
	return nil
}

// CmdTaskID finds a task by name in a tasks file and stores its ID in an
// env var.
func CmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskid FILE NAME VAR")
	}

	var items []task.Task
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}

	name := args[1]
	for _, item := range items {
		if item.Name == name {
			ts.Setenv(args[2], item.ID)
			return
		}
	}

	ts.Fatalf("task named %q not found", name)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
