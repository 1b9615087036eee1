// panelsim stands in for the CT-Board: it listens for the controller, prints
// every command it gets and sends the events typed on stdin. With -auto it
// also plays the shaft sensors, reporting the target floor a while after the
// motor starts.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"lift/common"
	"lift/elevnetwork"
)

func main() {
	listen := flag.String("listen", "0.0.0.0:4242", "listen addr ip:port (UDP port for QUIC)")
	auto := flag.Bool("auto", false, "report floor-reached automatically after -travel")
	travel := flag.Duration("travel", 2*time.Second, "simulated travel time between floors")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	typed := make(chan common.Event, 8)
	go readStdin(typed)

	fmt.Println("Listening on:", *listen)
	err := elevnetwork.ListenPanel(ctx, *listen, func(ctx context.Context, pc *elevnetwork.PanelConn) {
		servePanel(ctx, pc, typed, *auto, *travel)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Listen error:", err)
		os.Exit(1)
	}
}

func readStdin(out chan<- common.Event) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		e, err := common.ParseEvent(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		out <- e
	}
}

func servePanel(ctx context.Context, pc *elevnetwork.PanelConn, typed <-chan common.Event, auto bool, travel time.Duration) {
	arrivals := make(chan common.Event, 1)

	go func() {
		_ = pc.ReadCommands(ctx, func(m elevnetwork.PanelMsg) {
			printCommand(m)
			if !auto || m.Kind != elevnetwork.MK_Motor {
				return
			}
			if e, ok := arrivalFor(m.Motor); ok {
				time.AfterFunc(travel, func() {
					select {
					case arrivals <- e:
					default:
					}
				})
			}
		})
	}()

	for {
		var e common.Event
		select {
		case <-ctx.Done():
			return
		case <-pc.Done():
			fmt.Println("Controller disconnected")
			return
		case e = <-typed:
		case e = <-arrivals:
		}
		if err := pc.SendEvent(e, time.Second); err != nil {
			fmt.Fprintln(os.Stderr, "Send error:", err)
		}
	}
}

// arrivalFor maps a motor command to the sensor event that ends the ride.
func arrivalFor(motor string) (common.Event, bool) {
	switch motor {
	case common.MotorToString(common.MOTOR_UP):
		return common.EV_F1_REACHED, true
	case common.MotorToString(common.MOTOR_DOWN):
		return common.EV_F0_REACHED, true
	default:
		return common.EV_NO_EVENT, false
	}
}

func printCommand(m elevnetwork.PanelMsg) {
	switch m.Kind {
	case elevnetwork.MK_Door:
		fmt.Printf("DOOR    %s\n", m.Door)
	case elevnetwork.MK_Motor:
		fmt.Printf("MOTOR   %s\n", m.Motor)
	case elevnetwork.MK_Label:
		fmt.Printf("LCD     %s\n", m.Label)
	case elevnetwork.MK_Exception:
		fmt.Printf("EXCEPT  %s %q\n", m.Level, m.Message)
	case elevnetwork.MK_Status:
		if m.Status != nil {
			fmt.Printf("STATUS  label=%s door=%s motor=%s seq=%d\n", m.Status.Label,
				common.DoorToString(m.Status.Door), common.MotorToString(m.Status.Motor), m.Status.Seq)
		}
	default:
		fmt.Printf("?       %s\n", m.Kind)
	}
}
