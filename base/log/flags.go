package log

import "flag"

var logLevelFlag string

func init() {
	flag.StringVar(&logLevelFlag, "log", "", "set log level to [trace|debug|info|warning|error|critical]")
}
