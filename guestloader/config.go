package guestloader

import "github.com/BurntSushi/toml"

// PathsForISA names the three guest images guest_loader.cc's
// CreateInstance needs: the main executable, its vDSO, and the dynamic
// linker to run it under. The original hardcodes one constant set per
// guest architecture (guest_loader_impl.h's kAppProcessPath/kVdsoPath/
// kPtInterpPath); a config file generalizes that to every supported
// guest ISA without a rebuild.
type PathsForISA struct {
	MainExecutable string `toml:"main_executable"`
	VDSO           string `toml:"vdso"`
	Loader         string `toml:"loader"`
}

// Config is the on-disk loader configuration: one PathsForISA per guest
// ISA name (e.g. "riscv64", "arm64", "arm").
type Config struct {
	ISA map[string]PathsForISA `toml:"isa"`
}

// LoadConfig reads and decodes a loader config file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PathsFor returns the configured paths for isaName, if present.
func (c *Config) PathsFor(isaName string) (PathsForISA, bool) {
	p, ok := c.ISA[isaName]
	return p, ok
}
