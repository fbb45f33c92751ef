package main

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/xinggunghuang/engine-tester/internal/app/configuration"
)

func main() {
	config, err := configuration.NewFromEnv()
	if err != nil {
		log.Fatalf("unable to load configuration: %v", err)
	}

	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatalf("unable to parse log level %q: %v", config.LogLevel, err)
	}
	log.SetLevel(level)

	log.Infof("serving engine tester API on %s", config.ServerAddress)
	server := configuration.ServeAPI(&config)

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	if err := server.Close(); err != nil {
		panic(err)
	}
}
