package proc

import (
	"fmt"
	"os/exec"
	"testing"
)

func TestExitCode_Nil(t *testing.T) {
	code, err := ExitCode(nil)
	if code != 0 || err != nil {
		t.Fatalf("code=%d, err=%v", code, err)
	}
}

func TestExitCode_OtherError(t *testing.T) {
	code, err := ExitCode(fmt.Errorf("some error"))
	if code != 0 || err == nil {
		t.Fatalf("code=%d, err=%v", code, err)
	}
}

func TestExitCode_ExitError(t *testing.T) {
	// Run a command that exits with code 42
	cmd := exec.Command("sh", "-c", "exit 42")
	runErr := cmd.Run()

	code, err := ExitCode(runErr)
	if code != 42 || err != nil {
		t.Fatalf("code=%d, err=%v", code, err)
	}
}
