package config

import (
	"os"
	"testing"

	"ssavm/host"
)

func writeConfig(t *testing.T, lines ...string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "unit*.cfg")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			t.Fatalf("WriteString: %v", err)
		}
	}
	if err := f.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	return f.Name()
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MemSize != defaultMemSize {
		t.Errorf("MemSize = %d, want default %d", cfg.MemSize, defaultMemSize)
	}
	if cfg.AllocaBase != defaultAllocaBase {
		t.Errorf("AllocaBase = %d, want default %d", cfg.AllocaBase, defaultAllocaBase)
	}
}

func TestLoadMemAndAlloca(t *testing.T) {
	cfg, err := Load(writeConfig(t, "MEM 4096", "ALLOCA 2048"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MemSize != 4096 {
		t.Errorf("MemSize = %d, want 4096", cfg.MemSize)
	}
	if cfg.AllocaBase != 2048 {
		t.Errorf("AllocaBase = %d, want 2048", cfg.AllocaBase)
	}
}

func TestLoadMemRejectsNonNumeric(t *testing.T) {
	if _, err := Load(writeConfig(t, "MEM abc")); err == nil {
		t.Error("expected an error for a non-numeric MEM value")
	}
}

func TestLoadHostEnablesNamedBindings(t *testing.T) {
	cfg, err := Load(writeConfig(t, "HOST enable putchar puts"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.HostEnabled["putchar"] || !cfg.HostEnabled["puts"] {
		t.Errorf("HostEnabled = %v, want putchar and puts set", cfg.HostEnabled)
	}
	if cfg.HostEnabled["exit"] {
		t.Errorf("HostEnabled = %v, exit should not be set", cfg.HostEnabled)
	}
}

func TestBindingsFiltersToEnabledNames(t *testing.T) {
	cfg, err := Load(writeConfig(t, "HOST enable putchar"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	table := host.Table()
	filtered := cfg.Bindings(table)

	idx, ok := host.Index("putchar")
	if !ok {
		t.Fatal("putchar not registered in host table")
	}
	if filtered[idx] == nil {
		t.Error("putchar binding should survive filtering")
	}

	exitIdx, ok := host.Index("exit")
	if !ok {
		t.Fatal("exit not registered in host table")
	}
	if filtered[exitIdx] != nil {
		t.Error("exit binding should have been filtered out")
	}
}

func TestBindingsWithNoHostLinesEnablesEverything(t *testing.T) {
	cfg, err := Load(writeConfig(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	table := host.Table()
	filtered := cfg.Bindings(table)
	for i, fn := range table {
		if (fn == nil) != (filtered[i] == nil) {
			t.Errorf("slot %d: filtering changed a table with no HOST lines", i)
		}
	}
}
