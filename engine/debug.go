package engine

// debugAssertionsEnabled gates the internal consistency assertions the
// spec describes as present in "debug builds" and bypassed in "release
// builds" (§7). Go has no separate debug/release compilation mode, so
// this is controlled by the snakecoredebug build tag instead; see
// debug_on.go / debug_off.go and DESIGN.md.
var debugAssertionsEnabled = debugBuild
