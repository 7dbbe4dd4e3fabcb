// ABOUTME: Entry point for the feedwire interactive player
// ABOUTME: Parses CLI flags, sets up logging, and starts the TUI
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Feedwire-Audio/feedwire-go/internal/decode"
	"github.com/Feedwire-Audio/feedwire-go/internal/engine"
	"github.com/Feedwire-Audio/feedwire-go/internal/transport"
	"github.com/Feedwire-Audio/feedwire-go/internal/ui"
	"github.com/Feedwire-Audio/feedwire-go/internal/version"
)

var (
	portName = flag.String("port", "", "Serial port to connect to at startup")
	volume   = flag.Float64("volume", 1.0, "Initial volume multiplier (0.0-2.0)")
	logFile  = flag.String("log-file", "feedwire.log", "Log file path")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [audio files...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Files given on the command line are queued at startup.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// The TUI owns the terminal, so logs go to a file.
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()
	log.SetOutput(f)

	log.Printf("Starting %s %s", version.Product, version.Version)

	state := engine.NewState()
	state.SetGain(*volume)
	eng := engine.New(state, decode.File)

	for _, path := range flag.Args() {
		if _, err := os.Stat(path); err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}
		state.Enqueue(engine.NewTrack(path))
	}

	ports, err := transport.ListPorts()
	if err != nil {
		log.Printf("Port enumeration failed: %v", err)
	}

	if *portName != "" {
		p, err := transport.Open(*portName)
		if err != nil {
			log.Printf("Failed to open port %s: %v", *portName, err)
		} else {
			state.Connect(*portName, p)
			log.Printf("Connected to %s", *portName)
		}
	}

	if err := ui.Run(eng, ports); err != nil {
		log.Printf("TUI error: %v", err)
		fmt.Fprintf(os.Stderr, "feedwire: %v\n", err)
		os.Exit(1)
	}

	state.Close()
}
