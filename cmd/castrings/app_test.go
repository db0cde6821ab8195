package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/castrings/config"
)

func TestApplyFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output = "from-config/Strings.cpp"

	applyFlags(cfg, flagOverrides{
		Sysroot: "/opt/sdk",
		Output:  "from-flag/Strings.cpp",
		Watch:   true,
	})

	if cfg.Compiler != "clang" {
		t.Errorf("unset flag should keep config value, got %s", cfg.Compiler)
	}
	if cfg.Sysroot != "/opt/sdk" {
		t.Errorf("sysroot flag not applied, got %s", cfg.Sysroot)
	}
	if cfg.Output != "from-flag/Strings.cpp" {
		t.Errorf("output flag should override config, got %s", cfg.Output)
	}
	if !cfg.Watch.Enabled {
		t.Error("watch flag not applied")
	}
}

func TestLoadConfigExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "compiler: cc\noutput: out/Strings.cpp\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, nil)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Compiler != "cc" {
		t.Errorf("compiler = %s, want cc", cfg.Compiler)
	}
	if cfg.Output != "out/Strings.cpp" {
		t.Errorf("output = %s, want out/Strings.cpp", cfg.Output)
	}
	// Unset fields fall back to defaults.
	if cfg.Header != "CoreAudio/AudioServerPlugIn.h" {
		t.Errorf("header = %s, want default", cfg.Header)
	}
}

func TestLoadConfigExplicitFileMissing(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

// End-to-end pass over the pipeline with a stub compiler: preprocess,
// extract, render, write.
func TestGenerateOnce(t *testing.T) {
	dir := t.TempDir()

	compiler := filepath.Join(dir, "cc")
	script := `#!/bin/sh
cat > /dev/null
cat <<'EOF'
enum {
    kAudioObjectClassID = 'aobj',
    kAudioDevicePropertyStreams = 'stm#',
    kAudioClockDevicePropertyStreams = 'stm#',
    kAudioObjectPropertyScopeGlobal = 'glob',
    kAudioServerPlugInIOOperationReadInput = 'read',
    kAudioHardwareBadObjectError = '!obj',
    kAudioFormatLinearPCM = 'lpcm',
    kAudioFormatFlagIsFloat = 1,
    kAudioFormatFlagIsBigEndian = 0
};
EOF
`
	if err := os.WriteFile(compiler, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Compiler = compiler
	cfg.Output = filepath.Join(dir, "Strings.cpp")

	app := NewApp(cfg, nil)
	if err := app.GenerateOnce(context.Background()); err != nil {
		t.Fatalf("GenerateOnce() error = %v", err)
	}

	data, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"// THIS FILE IS AUTO-GENERATED. DO NOT EDIT!",
		"case kAudioObjectClassID:",
		"case kAudioDevicePropertyStreams:",
		"case kAudioObjectPropertyScopeGlobal:",
		"case kAudioServerPlugInIOOperationReadInput:",
		"case kAudioHardwareBadObjectError:",
		"case kAudioFormatLinearPCM:",
		"if (formatFlags & kAudioFormatFlagIsFloat) {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// The clock device selector lost the 'stm#' collision; the zero
	// flag was dropped.
	for _, reject := range []string{
		"case kAudioClockDevicePropertyStreams:",
		"kAudioFormatFlagIsBigEndian",
	} {
		if strings.Contains(out, reject) {
			t.Errorf("output must not contain %q", reject)
		}
	}
}

func TestGenerateOnceCompilerFailure(t *testing.T) {
	dir := t.TempDir()

	compiler := filepath.Join(dir, "cc")
	if err := os.WriteFile(compiler, []byte("#!/bin/sh\nexit 1\n"), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Compiler = compiler
	cfg.Output = filepath.Join(dir, "Strings.cpp")

	app := NewApp(cfg, nil)
	if err := app.GenerateOnce(context.Background()); err == nil {
		t.Fatal("expected error for failing compiler")
	}

	// Materialization failure aborts before any output is written.
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Errorf("no output file may exist after a failed run, stat err = %v", err)
	}
}
