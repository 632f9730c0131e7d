package telegram

import (
	"errors"
	"io"
	"relaybot/sources/texting"
	"strings"

	"github.com/alecthomas/kong"
)

var errEmptyArguments = errors.New("command arguments are empty")

// ParseCmd fills cmd from the arguments of a chat command. Kong never writes to the
// process output nor exits here.
func ParseCmd(cmd any, args string) error {
	parser, err := kong.New(cmd,
		kong.Name("relaybot"),
		kong.NoDefaultHelp(),
		kong.Writers(io.Discard, io.Discard),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return err
	}

	_, err = parser.Parse(texting.ParseCmdArgs(args))
	return err
}

// ParseRequiredCmd is ParseCmd for commands that take at least one argument.
func ParseRequiredCmd(cmd any, args string) error {
	if strings.TrimSpace(args) == "" {
		return errEmptyArguments
	}
	return ParseCmd(cmd, args)
}
