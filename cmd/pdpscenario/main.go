// Command pdpscenario generates pickup-and-delivery scenarios.
package main

import "github.com/tebeka/atexit"

func main() {
	if err := Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
