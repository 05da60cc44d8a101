package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/commands/server"
	"github.com/iov-one/quorum/cmd/quorumd/app"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const flagHome = "home"

func helpMessage() {
	fmt.Println("quorumd")
	fmt.Println("          Shared custody wallet ABCI application")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check the app_state of genesis files")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (env QUORUM_HOME)`)
}

func generateApp(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error) {
	a, err := app.GenerateApp(home, logger, debug, reg)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func main() {
	conf, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := conf.Logger(os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	home := flag.String(flagHome, conf.Home, "directory to store files under")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *home, rest)
	case "start":
		err = server.StartCmd(generateApp, logger, *home, conf.StartOptions(), rest)
	case "validate":
		err = server.ValidateGenesis(app.Initializers(), rest)
	case "version":
		fmt.Println(quorum.Version())
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
		helpMessage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("Command failed", "cmd", cmd, "err", err)
		os.Exit(1)
	}
}
