package logging_helper

import (
	"os"
	"path/filepath"
	"testing"

	"gowebostv/go_src/configuration"

	"github.com/sirupsen/logrus"
)

func testConfig(logPath string) *configuration.Config {
	return &configuration.Config{
		Logging: configuration.Logging{
			Level:         "debug",
			FilePath:      logPath,
			RotationSize:  1,
			MaxBackups:    2,
			ConsoleOutput: false,
		},
	}
}

func TestSetupLogging_Success(t *testing.T) {
	tempDir := t.TempDir()
	appName := "TestApp"

	if err := SetupLogging(testConfig(tempDir), appName); err != nil {
		t.Fatalf("SetupLogging failed: %v", err)
	}

	logFile := filepath.Join(tempDir, appName, appName+".log")
	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Errorf("log file was not created at %s", logFile)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", logrus.GetLevel())
	}
}

func TestSetupLogging_NilConfig(t *testing.T) {
	if err := SetupLogging(nil, "app"); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestSetupLogging_EmptyAppName(t *testing.T) {
	if err := SetupLogging(testConfig(t.TempDir()), ""); err == nil {
		t.Fatal("expected error for empty app name")
	}
}

func TestSetupLogging_InvalidLevelDefaultsToInfo(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Logging.Level = "not-a-level"

	if err := SetupLogging(cfg, "TestApp"); err != nil {
		t.Fatalf("SetupLogging failed: %v", err)
	}
	if logrus.GetLevel() != logrus.InfoLevel {
		t.Errorf("expected fallback to info level, got %s", logrus.GetLevel())
	}
}

func TestSetupLogging_MissingFilePath(t *testing.T) {
	cfg := testConfig("")
	if err := SetupLogging(cfg, "TestApp"); err == nil {
		t.Fatal("expected error for missing log file path")
	}
}
