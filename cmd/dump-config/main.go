package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/caasmo/favicache/config"
)

// dump-config prints the effective configuration as TOML: the built-in
// defaults, or the defaults merged with a config file. Useful for
// bootstrapping a config file and for checking what a deployment resolves to.
func main() {
	configPath := flag.String("config", "", "optional config file to merge over the defaults")
	flag.Parse()

	cfg := config.NewDefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", *configPath, err)
			os.Exit(1)
		}
	}

	if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode config: %v\n", err)
		os.Exit(1)
	}
}
