package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/theGnaNtechHub/Elearn/core"
	"github.com/theGnaNtechHub/Elearn/core/pseudo"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "PSEUDO : ", 0)

	conf := core.NewConfig()

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		svc:        pseudo.NewService(conf),
		validate:   validate,
		translator: translator,
		stdin:      os.Stdin,
		out:        os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("error: %s\n", err)
		}
		os.Exit(1)
	}
}
