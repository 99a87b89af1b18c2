package main

import "fmt"

func (cli *commandLine) hints(code string) error {
	hints := cli.svc.SyntaxHints(code)
	if len(hints) == 0 {
		fmt.Fprintln(cli.out, "no hints")
		return nil
	}
	for _, h := range hints {
		if h.Suggestion == "" {
			fmt.Fprintf(cli.out, "line %d: %s\n", h.Line, h.Message)
		} else {
			fmt.Fprintf(cli.out, "line %d: %s (%s)\n", h.Line, h.Message, h.Suggestion)
		}
	}
	return nil
}

func (cli *commandLine) suggest(code string) error {
	tips := cli.svc.LearningSuggestions(code)
	if len(tips) == 0 {
		fmt.Fprintln(cli.out, "no suggestions")
		return nil
	}
	for _, tip := range tips {
		fmt.Fprintf(cli.out, "- %s\n", tip)
	}
	return nil
}
