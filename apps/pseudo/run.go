package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// evaluate runs code and prints its output. A failed program is returned as an error.
func (cli *commandLine) evaluate(code string, steps, asJSON bool) error {
	res := cli.svc.Evaluate(code, steps)

	switch {
	case asJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encoding result")
		}
		fmt.Fprintln(cli.out, string(data))
	case steps:
		for _, s := range res.Steps {
			fmt.Fprintf(cli.out, "%4d | %s\n", s.LineNumber, s.Code)
			fmt.Fprint(cli.out, s.Output)
			if s.Error != "" {
				fmt.Fprintf(cli.out, "     ! %s\n", s.Error)
			}
		}
	default:
		fmt.Fprint(cli.out, res.Output)
	}

	if res.Failed() {
		return errors.New(res.Message)
	}
	return nil
}
