package main

import (
	"context"
	"flag"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rdxdkr/my-PNGme/common"
	"github.com/rdxdkr/my-PNGme/config"
	"github.com/rdxdkr/my-PNGme/png"
	"github.com/rdxdkr/my-PNGme/server"
)

const (
	defaultConfigFilename = "/etc/pngserver.cfg"
)

func main() {
	var configFilename string
	flag.StringVar(&configFilename, "c", "", "configuration filename")
	flag.Parse()

	if configFilename == "" {
		configFilename = defaultConfigFilename
	}

	f, err := os.Open(configFilename)
	if err != nil {
		log.Fatalf("can not open config file %s: %s", configFilename, err)
	}
	defer f.Close()

	cfg, err := config.ReadServerConfig(f)
	if err != nil {
		log.Fatalf("error reading config: %s", err)
	}

	lf, err := common.ConfigureLogging(cfg.LogFileName, cfg.Debug)
	if err != nil {
		log.Fatalf("error opening logfile: %s", err)
	}
	if lf != nil {
		defer lf.Close()
	}

	content, err := ioutil.ReadFile(cfg.PngFileName)
	if err != nil {
		log.Fatalf("error reading png file %s: %s", cfg.PngFileName, err)
	}

	file, err := png.Decode(content)
	if err != nil {
		log.Fatalf("error decoding png file %s: %s", cfg.PngFileName, err)
	}

	srv, err := server.NewServer(file, cfg).Start()
	if err != nil {
		log.Fatalf("error starting server: %s", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	srv.Shutdown(context.Background())
}
