//go:build unix

// Copyright 2015 go-termios Author. All Rights Reserved.
// https://github.com/go-termios/termios
// Author: John Lenton <chipaca@github.com>

// Package eunix provides extra Unix-specific system utilities.
package eunix

import (
	"golang.org/x/sys/unix"
)

// Termios represents terminal attributes.
type Termios unix.Termios

// TermiosForFd returns a pointer to a Termios structure if the file
// descriptor is open on a terminal device.
func TermiosForFd(fd int) (*Termios, error) {
	term, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	return (*Termios)(term), err
}

// Copy returns a copy of term.
func (term *Termios) Copy() *Termios {
	v := *term
	return &v
}

// ApplyToFd applies term to the file descriptor fd.
func (term *Termios) ApplyToFd(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrNowIOCTL, (*unix.Termios)(term))
}

// SetVTime sets the timeout in deciseconds for noncanonical reads.
func (term *Termios) SetVTime(v uint8) {
	term.Cc[unix.VTIME] = v
}

// SetVMin sets the minimal number of characters for noncanonical reads.
func (term *Termios) SetVMin(v uint8) {
	term.Cc[unix.VMIN] = v
}

// SetICanon sets the canonical flag.
func (term *Termios) SetICanon(v bool) {
	if v {
		term.Lflag |= unix.ICANON
	} else {
		term.Lflag &^= unix.ICANON
	}
}

// SetIExten sets the iexten flag.
func (term *Termios) SetIExten(v bool) {
	if v {
		term.Lflag |= unix.IEXTEN
	} else {
		term.Lflag &^= unix.IEXTEN
	}
}

// SetEcho sets the echo flag.
func (term *Termios) SetEcho(v bool) {
	if v {
		term.Lflag |= unix.ECHO
	} else {
		term.Lflag &^= unix.ECHO
	}
}

// SetICRNL sets the CR-to-NL translation flag.
func (term *Termios) SetICRNL(v bool) {
	if v {
		term.Iflag |= unix.ICRNL
	} else {
		term.Iflag &^= unix.ICRNL
	}
}
