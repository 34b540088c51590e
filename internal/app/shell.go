package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const shellPrompt = "attend> "

// RunShell reads command lines from in until EOF or "exit". Every line runs
// against the same signed-in state. in must be the reader the QR scanner
// was built on, so a scanned payload is taken from the same buffer.
func RunShell(ctx context.Context, cli *CLI, in *bufio.Reader, out io.Writer) error {
	fmt.Fprintln(out, `type "help" for commands, "exit" to quit`)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, shellPrompt)

		line, readErr := in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			if line == "exit" || line == "quit" {
				return nil
			}
			args, err := splitArgs(line)
			if err != nil {
				fmt.Fprintln(out, err)
			} else {
				// failures are already reported by Run
				_ = cli.Run(ctx, args)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return readErr
		}
	}
}

// splitArgs splits a command line on whitespace. Single quotes keep their
// content literally, double quotes allow \" and \\ escapes, so a JSON QR
// payload can be pasted as one argument.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case quote == '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inArg = true
		case r == '\\':
			escaped = true
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
