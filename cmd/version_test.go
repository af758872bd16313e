package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"reflect"
	"strings"
	"testing"
)

// TestVersionCmdStructure verifies that VersionCmd has the required fields.
func TestVersionCmdStructure(t *testing.T) {
	cmd := &VersionCmd{}
	val := reflect.ValueOf(cmd).Elem()

	if !val.FieldByName("Short").IsValid() {
		t.Error("VersionCmd does not have Short field")
	}
	if !val.FieldByName("JSON").IsValid() {
		t.Error("VersionCmd does not have JSON field")
	}
}

// TestCLIHasVersionCommand verifies that the CLI struct includes VersionCmd.
func TestCLIHasVersionCommand(t *testing.T) {
	cli := &CLI{}
	val := reflect.ValueOf(cli).Elem()
	versionField := val.FieldByName("Version")

	if !versionField.IsValid() {
		t.Fatal("CLI struct does not have Version field")
	}
	if versionField.Type().Name() != "VersionCmd" {
		t.Errorf("Version field type: got %s, want VersionCmd", versionField.Type().Name())
	}
}

// TestVersionCmdRunMethod verifies that VersionCmd has a Run() method.
func TestVersionCmdRunMethod(t *testing.T) {
	cmd := &VersionCmd{}
	val := reflect.ValueOf(cmd)

	runMethod := val.MethodByName("Run")
	if !runMethod.IsValid() {
		t.Fatal("VersionCmd does not have Run method")
	}

	methodType := runMethod.Type()
	if methodType.NumIn() != 0 {
		t.Errorf("Run method should have 0 input parameters, got %d", methodType.NumIn())
	}
	if methodType.NumOut() != 1 {
		t.Errorf("Run method should have 1 output parameter, got %d", methodType.NumOut())
	}
}

// TestVersionCmdRun tests the Run method with different flag combinations.
func TestVersionCmdRun(t *testing.T) {
	tests := []struct {
		name          string
		short         bool
		jsonFlag      bool
		expectContain []string
		expectJSON    bool
	}{
		{
			name:     "default output",
			expectContain: []string{
				"Version:",
				"Commit:",
				"Date:",
			},
		},
		{
			name:  "short output",
			short: true,
		},
		{
			name:       "JSON output",
			jsonFlag:   true,
			expectJSON: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureStdout(t, func() {
				cmd := &VersionCmd{Short: tt.short, JSON: tt.jsonFlag}
				if err := cmd.Run(); err != nil {
					t.Fatalf("Run() error = %v", err)
				}
			})

			if tt.expectJSON {
				var result map[string]string
				if err := json.Unmarshal([]byte(output), &result); err != nil {
					t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
				}
				for _, field := range []string{"version", "commit", "date"} {
					if _, ok := result[field]; !ok {
						t.Errorf("JSON output missing field: %s", field)
					}
				}
				return
			}

			for _, expected := range tt.expectContain {
				if !strings.Contains(output, expected) {
					t.Errorf("Output does not contain %q\nGot: %s", expected, output)
				}
			}

			if tt.short {
				lines := strings.Split(strings.TrimSpace(output), "\n")
				if len(lines) != 1 {
					t.Errorf("Short output should be single line, got %d lines", len(lines))
				}
			}
		})
	}
}

// TestVersionCmdRunExecution is a basic smoke test for the version command.
func TestVersionCmdRunExecution(t *testing.T) {
	var err error
	captureStdout(t, func() {
		cmd := &VersionCmd{}
		err = cmd.Run()
	})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}
