package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/theGnaNtechHub/Elearn/core/pseudo"
)

var (
	stdinIsTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) } // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	svc        pseudo.Service
	validate   *validator.Validate
	translator ut.Translator
	stdin      io.Reader
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  run [-steps] [-json] [FILE] - evaluate a program")
	fmt.Fprintln(cli.out, "  hints [FILE]                - list syntax errors and style hints")
	fmt.Fprintln(cli.out, "  suggest [FILE]              - list learning suggestions")
	fmt.Fprintln(cli.out, "The program is read from stdin when FILE is missing or '-'.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	runCmd := flag.NewFlagSet("run", flag.ContinueOnError)
	runSteps := runCmd.Bool("steps", false, "Print every executed statement with its output.")
	runJSON := runCmd.Bool("json", false, "Print the result the way the API returns it.")
	hintsCmd := flag.NewFlagSet("hints", flag.ContinueOnError)
	suggestCmd := flag.NewFlagSet("suggest", flag.ContinueOnError)
	for _, fs := range []*flag.FlagSet{runCmd, hintsCmd, suggestCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "run":
		code, err := cli.parseAndRead(runCmd, args[2:])
		if err != nil {
			return err
		}
		return cli.evaluate(code, *runSteps, *runJSON)
	case "hints":
		code, err := cli.parseAndRead(hintsCmd, args[2:])
		if err != nil {
			return err
		}
		return cli.hints(code)
	case "suggest":
		code, err := cli.parseAndRead(suggestCmd, args[2:])
		if err != nil {
			return err
		}
		return cli.suggest(code)
	default:
		cli.printUsage()
		return errHelp
	}
}

// parseAndRead parses the command's flags and reads the program its first
// argument names, or stdin.
func (cli *commandLine) parseAndRead(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return "", errHelp
		}
		return "", err
	}

	path := fs.Arg(0)
	if path == "" || path == "-" {
		if stdinIsTerminalFunc() { // nothing piped in
			fs.Usage()
			return "", errHelp
		}
		data, err := ioutil.ReadAll(cli.stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return cli.checkSource(string(data))
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return cli.checkSource(string(data))
}

// checkSource validates code the way the API validates request bodies.
// Files are raw bytes, so unlike JSON input they can hold invalid UTF-8.
func (cli *commandLine) checkSource(code string) (string, error) {
	req := pseudo.CodeRequest{Code: &code}
	if err := req.Validate(cli.validate); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			return "", errors.New(vErrs[0].Translate(cli.translator))
		}
		return "", errors.Wrap(err, "validating source")
	}
	return code, nil
}
