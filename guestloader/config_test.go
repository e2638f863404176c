package guestloader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigParsesPerISAPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loader.toml")
	contents := `
[isa.riscv64]
main_executable = "/system/bin/app_process64"
vdso = "/system/lib64/vdso.so"
loader = "/system/bin/linker64"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	paths, ok := cfg.PathsFor("riscv64")
	if !ok {
		t.Fatalf("expected riscv64 entry")
	}
	if paths.MainExecutable != "/system/bin/app_process64" {
		t.Fatalf("MainExecutable = %q, want /system/bin/app_process64", paths.MainExecutable)
	}
	if paths.VDSO != "/system/lib64/vdso.so" {
		t.Fatalf("VDSO = %q, want /system/lib64/vdso.so", paths.VDSO)
	}
}

func TestPathsForUnknownISA(t *testing.T) {
	cfg := &Config{ISA: map[string]PathsForISA{}}
	if _, ok := cfg.PathsFor("arm"); ok {
		t.Fatalf("expected missing ISA lookup to fail")
	}
}
