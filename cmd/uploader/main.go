package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/anthanhphan/go-file-uploader/internal/client/uploader"
	"github.com/anthanhphan/gosdk/logger"
)

func main() {
	var serverURL, mode string
	flag.StringVar(&serverURL, "server", "http://localhost:8090/api/upload", "Upload endpoint URL")
	flag.StringVar(&mode, "mode", "sequential", "Upload mode: sequential or batch")
	flag.Parse()

	logger.InitLogger(&logger.Config{
		LogLevel:    logger.LevelInfo,
		LogEncoding: logger.EncodingJSON,
	})

	files, err := uploader.LoadFiles(flag.Args())
	if err != nil {
		log.Fatalf("Failed to read files: %v", err)
	}

	ctx := context.Background()
	u := uploader.New(serverURL, uploader.WithProgress(func(s uploader.State) {
		fmt.Fprintf(os.Stderr, "\rProgress: %3d%%", s.Progress)
	}))
	u.Select(files)

	var state uploader.State
	switch mode {
	case "sequential":
		state = u.UploadSequential(ctx)
	case "batch":
		state = u.UploadBatch(ctx)
	default:
		log.Fatalf("Unknown mode %q", mode)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Println(state.Message)
	if state.Stats != nil {
		fmt.Println(state.Stats.String())
	}
	if state.Progress < 100 {
		os.Exit(1)
	}
}
