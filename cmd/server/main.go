package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/anthanhphan/go-fileshare/internal/server/app"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-configPath FILE]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Serves the file-sharing API (/api/files), /healthz and /metrics.")
		flag.PrintDefaults()
	}

	var configPath string
	flag.StringVar(&configPath, "configPath", "", "fileshare server config (yaml or json); defaults to internal/server/config/$ENV.yaml")
	flag.Parse()

	server, err := app.New(configPath)
	if err != nil {
		log.Fatalf("fileshare: init: %v", err)
	}

	if err := server.Run(); err != nil {
		log.Fatalf("fileshare: %v", err)
	}
}
