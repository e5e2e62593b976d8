// Retui runs the demos of the retui component renderer, and replays sessions
// recorded from them.
package main

import (
	"os"

	"src.retui.sh/pkg/buildinfo"
	"src.retui.sh/pkg/demo"
	"src.retui.sh/pkg/prog"
	"src.retui.sh/pkg/replay"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, replay.Program, demo.Program{})))
}
