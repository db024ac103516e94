// Package util provides shared utilities for the CLI.
package util

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

func readLine() (string, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PromptInput asks for one line of input, e.g. the account username
// before a push.
func PromptInput(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	return readLine()
}

// PromptPassword asks for a credential without echoing it. When stdin is
// piped (CI runs), it degrades to a plain line read.
func PromptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	if !stdinIsTerminal() {
		return readLine()
	}

	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// PromptConfirm asks a yes/no question, returning fallback on an empty
// answer. Without a terminal on stdin the question is skipped entirely and
// fallback is returned, so scripted runs never hang waiting for an answer.
func PromptConfirm(question string, fallback bool) (bool, error) {
	if !stdinIsTerminal() {
		return fallback, nil
	}

	hint := "[y/N]"
	if fallback {
		hint = "[Y/n]"
	}
	fmt.Fprintf(os.Stderr, "%s %s: ", question, hint)

	answer, err := readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return fallback, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
