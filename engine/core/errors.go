package core

import (
	"errors"
)

var (
	ErrNoLoader  = errors.New("no loader registered for asset type")
	ErrEmptyMesh = errors.New("mesh contains no faces")
	ErrIndexOOB  = errors.New("index references a vertex out of bounds")
	ErrUnknown   = errors.New("unknown")
)
