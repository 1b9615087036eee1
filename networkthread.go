// networkthread.go
package main

import (
	"context"
	"log"
	"time"

	"lift/common"
	"lift/elevio"
)

type statusSender interface {
	Connected() bool
	SendStatus(st elevio.Status) error
}

// networkThread sends the panel a status heartbeat every StatusPeriod while
// it is connected.
func networkThread(ctx context.Context, cfg common.Config, board *elevio.StatusBoard, link statusSender) {
	ticker := time.NewTicker(cfg.StatusPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !link.Connected() {
				continue
			}
			if err := sendStatus(board, link); err != nil {
				log.Printf("networkThread: status: %v", err)
			}
		}
	}
}

func sendStatus(board *elevio.StatusBoard, link statusSender) error {
	st, err := board.Snapshot()
	if err != nil {
		return err
	}
	return link.SendStatus(st)
}
