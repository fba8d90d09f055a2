// Package xcforge holds metadata shared by the CLI commands.
package xcforge

// Version is reported by the --version flag.
const Version = "0.3.0"
