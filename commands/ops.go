package commands

import (
	"errors"
	"strconv"
	"strings"
)

type Operation int

const (
	DEFAULT Operation = iota
	// Mine pending transactions into one or more blocks.
	MINE
	// Stop a running mining task.
	STOP
	// Sign and submit a transfer from the wallet.
	TRANSFER
	// Show the balance of an address, the wallet's by default.
	BALANCE
	// List every transaction touching an address, the wallet's by default.
	HISTORY
	// Check the whole chain.
	VALIDATE
	// Render the last blocks of the chain.
	SHOW
	// Print the wallet public key.
	MY_PK
	// List transactions waiting to be mined.
	PENDING
)

var opNames = map[string]Operation{
	"mine":     MINE,
	"stop":     STOP,
	"transfer": TRANSFER,
	"balance":  BALANCE,
	"history":  HISTORY,
	"validate": VALIDATE,
	"show":     SHOW,
	"my_pk":    MY_PK,
	"pending":  PENDING,
}

// A command contains a operation and many arguments.
type Command struct {
	Op   Operation
	Args []string
}

func (c Command) IsValid() bool {
	switch c.Op {
	case STOP, VALIDATE, MY_PK, PENDING:
		return len(c.Args) == 0
	case MINE:
		if len(c.Args) == 0 {
			return true
		}
		// number of blocks must be a positive number.
		n, err := strconv.Atoi(c.Args[0])
		return len(c.Args) == 1 && err == nil && n > 0
	case TRANSFER:
		if len(c.Args) != 2 {
			return false
		}
		v, err := strconv.ParseFloat(c.Args[1], 64)
		return c.Args[0] != "" && err == nil && v > 0
	case BALANCE, HISTORY:
		return len(c.Args) <= 1
	case SHOW:
		if len(c.Args) != 1 {
			return false
		}
		// depth must be a number.
		d, err := strconv.Atoi(c.Args[0])
		return err == nil && d >= 0
	default:
		return false
	}
}

// From string, create a command. Words are separated by spaces.
func CreateCommand(s string) (Command, error) {
	ss := strings.Fields(s)
	if len(ss) == 0 {
		return Command{}, errors.New("command is empty")
	}
	cmd := Command{Op: opNames[ss[0]]}
	cmd.Args = ss[1:]
	if !cmd.IsValid() {
		return Command{}, errors.New("invalid command")
	}
	return cmd, nil
}

// Create a brand new command with default operation.
func NewDefaultCommand() Command {
	return Command{
		Op: DEFAULT,
	}
}

func (c Command) IsDefault() bool {
	return c.Op == DEFAULT
}
