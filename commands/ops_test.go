package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateCommand(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"mine", Command{Op: MINE, Args: []string{}}},
		{"mine 3", Command{Op: MINE, Args: []string{"3"}}},
		{"stop", Command{Op: STOP, Args: []string{}}},
		{"transfer 04ab 2.5", Command{Op: TRANSFER, Args: []string{"04ab", "2.5"}}},
		{"balance", Command{Op: BALANCE, Args: []string{}}},
		{"history  04ab ", Command{Op: HISTORY, Args: []string{"04ab"}}},
		{"validate", Command{Op: VALIDATE, Args: []string{}}},
		{"show 2", Command{Op: SHOW, Args: []string{"2"}}},
		{"my_pk", Command{Op: MY_PK, Args: []string{}}},
		{"pending", Command{Op: PENDING, Args: []string{}}},
	}
	for _, c := range cases {
		got, err := CreateCommand(c.in)
		assert.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestCreateCommandInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"fly",
		"mine 0",
		"mine x",
		"stop now",
		"transfer 04ab",
		"transfer 04ab 0",
		"transfer 04ab -1",
		"transfer 04ab ten",
		"balance a b",
		"show",
		"show -1",
		"show deep",
	} {
		_, err := CreateCommand(in)
		assert.Error(t, err, in)
	}
}

func TestDefaultCommand(t *testing.T) {
	assert.True(t, NewDefaultCommand().IsDefault())
	assert.False(t, NewDefaultCommand().IsValid())
	assert.False(t, Command{Op: STOP}.IsDefault())
}
