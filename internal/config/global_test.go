package config

import "testing"

func TestResolvePath(t *testing.T) {
	clearEnv(t)

	if path, required := ResolvePath(""); path != DefaultFile || required {
		t.Errorf("ResolvePath(\"\") = %q, %v", path, required)
	}

	t.Setenv(EnvConfig, "/etc/meshwup.yml")
	if path, required := ResolvePath(""); path != "/etc/meshwup.yml" || !required {
		t.Errorf("ResolvePath(\"\") with env = %q, %v", path, required)
	}
	if path, _ := ResolvePath("flag.yml"); path != "flag.yml" {
		t.Errorf("flag should beat env, got %q", path)
	}
}

func TestLoadCached(t *testing.T) {
	clearEnv(t)
	ResetCache()
	defer ResetCache()

	path := writeConfig(t, "samples: 12\n")
	first, err := LoadCached(path)
	if err != nil {
		t.Fatalf("LoadCached() error = %v", err)
	}

	// The cache must win over later environment changes.
	t.Setenv(EnvSamples, "99")
	second, err := LoadCached(path)
	if err != nil {
		t.Fatal(err)
	}
	if first != second || second.Samples != 12 {
		t.Errorf("second load = %+v, want cached config", second)
	}

	ResetCache()
	third, err := LoadCached(path)
	if err != nil {
		t.Fatal(err)
	}
	if third.Samples != 99 {
		t.Errorf("after reset Samples = %d, want 99", third.Samples)
	}
}
