package cmd

import "errors"

var (
	ErrCommandNotFound = errors.New("cmd: command not found")
	ErrCommandExists   = errors.New("cmd: command already registered")
	ErrInvalidCommand  = errors.New("cmd: invalid command")
	ErrInvalidFlag     = errors.New("cmd: invalid flag")
	ErrMissingArgument = errors.New("cmd: missing argument")
)
