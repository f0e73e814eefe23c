// Package utils provides small helpers shared by the commands:
//
//   - envvar: ${VAR} and ${VAR:-default} expansion
//   - notify: formatted progress messages with symbols, colors and timing
//   - timer: total and per-stage elapsed time
package utils
