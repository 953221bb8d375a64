// Package cli implements the statoverlay command-line interface.
//
// Commands are Cobra commands that load the config, build the overlay over
// a set of statistic sources and hand it to a surface:
//
//	statoverlay run                 - Debug window over a simulated session
//	statoverlay render              - Print the panels once (or --raw stats)
//	statoverlay config init         - Create .statoverlay.yaml
//	statoverlay config set <k> <v>  - Change one setting
//	statoverlay config show         - Print the effective config
//	statoverlay version             - Build information
//	statoverlay completion <shell>  - Shell completion script
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color, --log-file) are defined on
// the root command and available to all subcommands. --verbose turns on
// debug logging; while the debug window is open log output goes to
// --log-file, or statoverlay-debug.log when debugging, and is discarded
// otherwise.
//
// # Error Handling
//
// Commands return structured errors from internal/errors. Execute prints
// them and exits with status 1.
package cli
