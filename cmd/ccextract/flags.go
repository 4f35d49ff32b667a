package main

import (
	"flag"
	"fmt"
	"os"
)

type AppFlags struct {
	GlobalConfigFile string
	Mode             string
}

func ParseFlags() AppFlags {
	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	modeFlag := flag.String("mode", "", "Pipeline stage to run: extract, parse, clean or analyze (overrides config file if set)")
	modeFlagAlias := flag.String("m", "", "Alias for -mode")

	flag.Parse()

	flags := AppFlags{}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *modeFlag != "" {
		flags.Mode = *modeFlag
	} else if *modeFlagAlias != "" {
		flags.Mode = *modeFlagAlias
	}

	if flags.Mode == "" && flags.GlobalConfigFile == "" {
		fmt.Fprintln(os.Stderr, "[FATAL] --mode argument is required when no config file is given (extract, parse, clean or analyze)")
		os.Exit(1)
	}

	return flags
}
