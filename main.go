// main.go
// Purpose: Application entry point. Loads the configuration, builds the car
// controller (FSM, safety timer, event queue, panel output) and starts the
// controller threads. Handles shutdown on interrupt (Ctrl+C).
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"lift/common"
	"lift/elevfsm"
	"lift/elevio"
	"lift/elevnetwork"
)

func main() {
	conFile := flag.String("con", common.DEFAULT_CON, "config file")
	panelAddr := flag.String("panel", "", `panel emulator address (overrides panelAddr in the config file, "none" reads events from stdin)`)
	flag.Parse()

	cfg := applyPanelFlag(common.LoadConfig(*conFile), *panelAddr)

	// ctrl + c handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		cancel()
	}()

	timer := elevfsm.NewTimer()
	events := elevio.NewEventQueue(cfg.EventBuffer, timer)

	var panel common.Actuator
	var link *elevnetwork.PanelLink
	if cfg.PanelAddr != "" {
		link = elevnetwork.NewPanelLink(cfg, events)
		panel = link
		go link.Run(ctx)
	} else {
		log.Printf("no panel configured, reading events from stdin")
		panel = common.LogOutputDevice()
		go consoleThread(ctx, os.Stdin, events)
	}

	board := elevio.NewStatusBoard(panel, common.STATUS_HISTORY)
	fsm := elevfsm.New(board, timer)

	if link != nil {
		go networkThread(ctx, cfg, board, link)
	}
	go fsmThread(ctx, cfg, fsm, events, board)

	<-ctx.Done()
	log.Printf("Shutting down")
}

const noPanel = "none"

// applyPanelFlag lets -panel replace the configured address. An empty flag
// keeps the config file's choice.
func applyPanelFlag(cfg common.Config, flagVal string) common.Config {
	switch flagVal {
	case "":
	case noPanel:
		cfg.PanelAddr = ""
	default:
		cfg.PanelAddr = flagVal
	}
	return cfg
}
