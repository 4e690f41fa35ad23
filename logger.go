package main

import (
	"fmt"
	"log"
)

type logger struct {
	silent  bool
	verbose bool
	history string
}

var l = logger{}

func (lg *logger) record(msg string) {
	lg.history += msg + "\n"
}

func (lg *logger) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	lg.record(msg)

	if lg.silent {
		return
	}

	log.Print(msg)
}

// Debugf only prints in verbose mode, but always keeps the message in the history.
func (lg *logger) Debugf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	lg.record(msg)

	if lg.silent || !lg.verbose {
		return
	}

	log.Print(msg)
}
