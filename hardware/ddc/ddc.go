// Package ddc decodes the I2C traffic on the DDC lines of the adapter. The
// decoder only listens. It never drives the lines and so it has no effect on
// what software reads back from the I2C read register.
//
// The decoder is modelled on a SaveKey-style i2c state machine: the bus state
// is advanced on every change to the lines, data bits are sampled on the
// rising edge of SCL and start/stop conditions are changes to SDA while SCL
// is held high.
package ddc

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/riva128/hardware/i2c"
	"github.com/jetsetilly/riva128/hardware/riva128"
	"github.com/jetsetilly/riva128/logger"
)

// Context is required by the Sniffer for logging.
type Context interface {
	logger.Permission
}

// State records how incoming bits are interpreted.
type State int

// List of valid State values.
const (
	Stopped State = iota
	Address
	Data
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Address:
		return "address"
	case Data:
		return "data"
	}
	return "unknown"
}

// the maximum number of transactions remembered by the sniffer
const maxTransactions = 64

// well known addresses on the DDC bus
var addressNames = map[uint8]string{
	0x30: "segment",
	0x37: "DDC/CI",
	0x50: "EDID",
}

// Transaction is a single I2C message between a start (or repeated start)
// and a stop condition.
type Transaction struct {
	Address uint8
	Read    bool
	Data    []uint8

	// one entry for the address byte and one entry for each data byte. true
	// if the byte was acknowledged (SDA low during the ninth clock)
	Acks []bool

	// a transaction is incomplete until a stop or repeated start is seen
	Complete bool
}

func (tr Transaction) String() string {
	var s strings.Builder

	dir := "W"
	if tr.Read {
		dir = "R"
	}
	fmt.Fprintf(&s, "%02x %s", tr.Address, dir)
	if n, ok := addressNames[tr.Address]; ok {
		fmt.Fprintf(&s, " (%s)", n)
	}

	for i, d := range tr.Data {
		fmt.Fprintf(&s, " %02x", d)
		if i+1 < len(tr.Acks) && !tr.Acks[i+1] {
			s.WriteString("~")
		}
	}
	if len(tr.Acks) > 0 && !tr.Acks[0] {
		s.WriteString(" [address nak]")
	}
	if !tr.Complete {
		s.WriteString(" ...")
	}

	return s.String()
}

// Sniffer decodes DDC traffic. It implements the riva128.Observer interface.
type Sniffer struct {
	ctx Context

	SCL i2c.Trace
	SDA i2c.Trace

	State State

	// the ninth bit of every byte is the acknowledge bit
	ack bool

	bits   uint8
	bitsCt int

	current      *Transaction
	transactions []Transaction
}

// Create is the preferred method of initialisation for the Sniffer type.
func Create(ctx Context) *Sniffer {
	return &Sniffer{
		ctx: ctx,
		SCL: i2c.NewTrace("SCL"),
		SDA: i2c.NewTrace("SDA"),
	}
}

// Reset puts the decoder into the stopped state. An incomplete transaction is
// discarded. Recorded transactions are kept.
func (sn *Sniffer) Reset() {
	sn.SCL.Reset()
	sn.SDA.Reset()
	sn.State = Stopped
	sn.current = nil
	sn.ack = false
	sn.resetBits()
}

// Sync sets the line traces to the supplied state without decoding anything.
// Used when the lines change by some means other than a register write, such
// as the restoration of a snapshot.
func (sn *Sniffer) Sync(l riva128.Lines) {
	// ticking twice leaves the traces with no edge
	sn.SCL.Tick(l.SCL)
	sn.SDA.Tick(l.SDA)
	sn.SCL.Tick(l.SCL)
	sn.SDA.Tick(l.SDA)
}

// Clear forgets all recorded transactions.
func (sn *Sniffer) Clear() {
	sn.transactions = sn.transactions[:0]
}

// Transactions returns the recorded transactions, oldest first. The
// transaction in progress, if any, is the last entry.
func (sn *Sniffer) Transactions() []Transaction {
	t := make([]Transaction, 0, len(sn.transactions)+1)
	t = append(t, sn.transactions...)
	if sn.current != nil {
		t = append(t, *sn.current)
	}
	return t
}

func (sn *Sniffer) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "ddc: %s\n%s\n%s", sn.State, sn.SCL.String(), sn.SDA.String())
	for _, tr := range sn.Transactions() {
		s.WriteString("\n")
		s.WriteString(tr.String())
	}
	return s.String()
}

func (sn *Sniffer) resetBits() {
	sn.bits = 0
	sn.bitsCt = 0
}

// recvBit returns true when eight bits have been received
func (sn *Sniffer) recvBit(v bool) bool {
	sn.bits <<= 1
	if v {
		sn.bits |= 0x01
	}
	sn.bitsCt++
	return sn.bitsCt == 8
}

func (sn *Sniffer) finish() {
	if sn.current == nil {
		return
	}
	sn.current.Complete = true
	logger.Logf(sn.ctx, "ddc", "%s", sn.current.String())
	if len(sn.transactions) >= maxTransactions {
		sn.transactions = sn.transactions[1:]
	}
	sn.transactions = append(sn.transactions, *sn.current)
	sn.current = nil
}

// ObserveLines advances the decoder with a new state of the lines.
func (sn *Sniffer) ObserveLines(l riva128.Lines) {
	sn.SCL.Tick(l.SCL)
	sn.SDA.Tick(l.SDA)

	// start and stop conditions are only possible while the clock is held
	// high. if the clock has just risen then the change to SDA is ambiguous
	// and is treated as data
	if sn.SCL.Hi() && !sn.SCL.Rising() {
		if sn.SDA.Falling() {
			if sn.State != Stopped {
				sn.finish()
			}
			sn.State = Address
			sn.ack = false
			sn.resetBits()
			return
		}
		if sn.SDA.Rising() {
			if sn.State != Stopped {
				sn.finish()
				sn.State = Stopped
			}
			return
		}
	}

	if sn.State == Stopped || !sn.SCL.Rising() {
		return
	}

	if sn.ack {
		sn.current.Acks = append(sn.current.Acks, sn.SDA.Lo())
		sn.ack = false
		return
	}

	if !sn.recvBit(sn.SDA.Hi()) {
		return
	}

	switch sn.State {
	case Address:
		sn.current = &Transaction{
			Address: sn.bits >> 1,
			Read:    sn.bits&0x01 == 0x01,
		}
		sn.State = Data
	case Data:
		sn.current.Data = append(sn.current.Data, sn.bits)
	}
	sn.ack = true
	sn.resetBits()
}
