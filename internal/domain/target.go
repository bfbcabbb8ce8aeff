package domain

import (
	"fmt"
	"net"
	"strconv"
)

// TargetLabel distinguishes the two endpoints of the comparison pair.
type TargetLabel string

const (
	LabelLocal    TargetLabel = "local"
	LabelInternet TargetLabel = "internet"
)

// Target is one endpoint to probe. Configured at startup, never mutated.
type Target struct {
	Label TargetLabel
	Host  string
	Port  int
}

// Addr returns the host:port form accepted by dialers.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

func (t Target) String() string {
	return fmt.Sprintf("%s [%s]", t.Addr(), t.Label)
}
