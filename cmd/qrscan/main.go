// qrscan scans a V4L2 camera for QR codes and prints every decoded
// payload to stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brandsimon/qrcode-scanner/internal/log"
	"github.com/brandsimon/qrcode-scanner/pkg/capture"
	"github.com/brandsimon/qrcode-scanner/pkg/scanner"
)

func main() {
	device := flag.String("device", "/dev/video0", "path to the V4L2 capture device")
	width := flag.Uint("width", 640, "desired capture width")
	height := flag.Uint("height", 480, "desired capture height")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*logLevel)

	cfg := scanner.DefaultConfig()
	cfg.Target = capture.Resolution{Width: uint32(*width), Height: uint32(*height)}

	sess, err := scanner.Open(*device, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "qrscan: %v\n", err)
		os.Exit(1)
	}
	defer sess.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		sess.Close()
		os.Exit(0)
	}()

	for {
		texts, err := sess.DecodeNext()
		if err != nil {
			if errors.Is(err, scanner.ErrClosed) {
				return
			}
			log.Warn("decode failed", "err", err)
			continue
		}
		for _, text := range texts {
			fmt.Printf("Found: %s\n", text)
		}
	}
}
