//go:build gpu

package main

// Building with -tags gpu registers gg's GPU accelerator. Rendering falls
// back to the CPU when no adapter is available.
import _ "github.com/gogpu/gg/gpu"
