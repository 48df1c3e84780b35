//go:build snakecoredebug

package engine

const debugBuild = true
