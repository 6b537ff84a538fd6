package sim

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// captureLogOutput runs fn and returns the log output as a string.
func captureLogOutput(fn func()) string {
	var buf bytes.Buffer
	origOutput := logrus.StandardLogger().Out
	origLevel := logrus.GetLevel()
	logrus.SetOutput(&buf)
	logrus.SetLevel(logrus.WarnLevel)
	defer func() {
		if origOutput != nil {
			logrus.SetOutput(origOutput)
		} else {
			logrus.SetOutput(os.Stderr)
		}
		logrus.SetLevel(origLevel)
	}()
	fn()
	return buf.String()
}

func TestNewNetwork_Saturated_Warns(t *testing.T) {
	// GIVEN 20 arrivals per minute against one 0.75-minute checker
	cfg := DefaultNetworkConfig()

	// WHEN the network is constructed
	output := captureLogOutput(func() {
		if _, err := NewNetwork(cfg, nil); err != nil {
			t.Fatal(err)
		}
	})

	// THEN a saturation warning MUST be logged
	if !strings.Contains(output, "saturated") {
		t.Errorf("expected saturation warning, got: %q", output)
	}
}

func TestNewNetwork_EnoughStaff_NoWarning(t *testing.T) {
	// GIVEN 16 checkers and 16 scanners: offered load 15/16 on each stage
	cfg := DefaultNetworkConfig().WithStaffing(16, 16)

	output := captureLogOutput(func() {
		if _, err := NewNetwork(cfg, nil); err != nil {
			t.Fatal(err)
		}
	})

	if strings.Contains(output, "saturated") {
		t.Errorf("unexpected saturation warning: %q", output)
	}
}
