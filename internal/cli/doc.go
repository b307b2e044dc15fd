// Package cli implements the doughcalc command line.
//
// # Commands
//
// tui (default) - interactive calculator:
//
//	doughcalc [--preset neapolitan] [--link URL]
//
// calc - print the recipe once:
//
//	doughcalc calc --mode doughBalls --balls 6 --ball-weight 270 --format table
//
// link - print a share link, or a YAML recipe document with --document:
//
//	doughcalc link --flour 750 --ingredient Water=70 --ingredient Salt=2.5
//
// presets - list built-in formulas:
//
//	doughcalc presets [--search pan]
//
// # Recipe sources
//
// Every command starts from the --preset formula (or the built-in default),
// then applies the --recipe document, then the --link query, then the
// individual flags. Whatever arrives last wins, field by field. The weights
// are then derived under the resulting mode.
//
// # Environment
//
// DOUGHCALC_LOG_LEVEL, DOUGHCALC_LOG_FILE, DOUGHCALC_BASE_URL,
// DOUGHCALC_PRESET and DOUGHCALC_FORMAT back the flags of the same name.
// A .env file in the working directory is loaded first.
package cli
