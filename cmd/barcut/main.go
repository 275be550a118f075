// BarCut plans how to cut fixed-length aluminum bars into the pieces of a
// job and reports cost, efficiency and reusable leftovers.
//
// Build:
//
//	go build -o barcut ./cmd/barcut
package main

func main() {
	Execute()
}
