package main

import (
	"bufio"
	"context"
	"io"
	"log"
	"strings"

	"lift/common"
	"lift/elevnetwork"
)

// consoleThread turns lines like "button-floor1" into events. It stands in
// for the panel buttons when no panel emulator is configured.
func consoleThread(ctx context.Context, r io.Reader, sink elevnetwork.EventSink) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		e, err := common.ParseEvent(line)
		if err != nil {
			log.Printf("console: %v", err)
			continue
		}
		sink.Push(e)
	}
}
