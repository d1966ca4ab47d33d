// Package global
package global

import (
	"flag"
)

var (
	DebugMode      = flag.Bool("debug", false, "Enable debug mode")
	ConfigFilePath = flag.String("config", "./config.json", "Path to configuration file")
	LogFilePath    = flag.String("log_file", "", "Also write logs to this file")
	ExtractFile    = flag.String("extract", "", "Export every stored design to this JSON file and exit")
	PreloadFile    = flag.String("preload", "", "Import designs from this JSON file and exit")
	FlushDesigns   = flag.Bool("flush", false, "Delete every stored design and exit")
	NoBanner       = flag.Bool("no_banner", false, "Do not print the startup banner")
)

const (
	AppVersion    = "1.0.0"
	ConfigVersion = "1.0.0"

	DefaultFilePermissions     = 0644
	DefaultDirectoryPermission = 0755

	InitialDataFileUrl = "https://raw.githubusercontent.com/half-nothing/smallcraft-designer/refs/heads/main/data/initial-smallcraft.json"
)
