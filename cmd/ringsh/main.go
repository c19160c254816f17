// Command ringsh is a host-only REPL over a set of named bipring queues,
// useful for poking at a config file's ring layout or reproducing a
// producer/consumer interleaving by hand without real hardware attached.
package main

import (
	"bufio"
	"context"
	"os"

	"github.com/google/shlex"

	"github.com/jangala-dev/bipring"
	"github.com/jangala-dev/bipring/bus"
	"github.com/jangala-dev/bipring/x/conv"
	"github.com/jangala-dev/bipring/x/fmtx"
)

func main() {
	if len(os.Args) < 2 {
		fmtx.Printf("usage: %s <config.json>\n", os.Args[0])
		os.Exit(2)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmtx.Printf("open config: %v\n", err)
		os.Exit(1)
	}
	cfg, err := bipring.LoadConfig(f)
	f.Close()
	if err != nil {
		fmtx.Printf("load config: %v\n", err)
		os.Exit(1)
	}

	named := bipring.Provision(cfg)
	byName := make(map[string]bipring.NamedRing, len(named))
	for _, n := range named {
		byName[n.Name] = n
	}

	b := bus.NewBus(8)
	watchdogConn := b.NewConnection("watchdog")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, n := range named {
		go bipring.NewWatchdog(n.Name, n.Ring, watchdogConn, 0).Run(ctx)
	}

	repl(byName)
}

func repl(rings map[string]bipring.NamedRing) {
	fmtx.Printf("ringsh: %d ring(s) loaded; type 'help'\n", len(rings))
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmtx.Print("> ")
		if !sc.Scan() {
			return
		}
		args, err := shlex.Split(sc.Text())
		if err != nil || len(args) == 0 {
			continue
		}
		dispatch(rings, args)
	}
}

func dispatch(rings map[string]bipring.NamedRing, args []string) {
	switch args[0] {
	case "help":
		fmtx.Print("commands: list | write <ring> <text> | read <ring> | stat <ring> | hex <ring>\n")
	case "list":
		for name, n := range rings {
			fmtx.Printf("%s: cap=%d fill=%d\n", name, n.Ring.Cap(), n.Ring.Fill())
		}
	case "write":
		if len(args) < 3 {
			fmtx.Print("usage: write <ring> <text>\n")
			return
		}
		n, ok := rings[args[1]]
		if !ok {
			fmtx.Printf("no such ring %q\n", args[1])
			return
		}
		cmdWrite(n.Ring, args[2])
	case "read":
		if len(args) < 2 {
			fmtx.Print("usage: read <ring>\n")
			return
		}
		n, ok := rings[args[1]]
		if !ok {
			fmtx.Printf("no such ring %q\n", args[1])
			return
		}
		cmdRead(n.Ring)
	case "stat":
		if len(args) < 2 {
			fmtx.Print("usage: stat <ring>\n")
			return
		}
		n, ok := rings[args[1]]
		if !ok {
			fmtx.Printf("no such ring %q\n", args[1])
			return
		}
		s := n.Ring.Stats()
		fmtx.Printf("%s: fill=%d written=%d read=%d frames_dropped=%d bytes_dropped=%d\n",
			args[1], n.Ring.Fill(), s.BytesWritten(), s.BytesRead(), s.FramesDropped(), s.BytesDropped())
	case "hex":
		if len(args) < 2 {
			fmtx.Print("usage: hex <ring>\n")
			return
		}
		n, ok := rings[args[1]]
		if !ok {
			fmtx.Printf("no such ring %q\n", args[1])
			return
		}
		cmdHex(n.Ring)
	default:
		fmtx.Printf("unknown command %q; try 'help'\n", args[0])
	}
}

func cmdWrite(r bipring.Ring, text string) {
	var g *bipring.WriteGrant
	var err error
	bipring.With(func(cs bipring.CS) { g, err = r.GrantExact(cs, len(text)) })
	if err != nil {
		fmtx.Printf("write: %v\n", err)
		return
	}
	copy(g.BufMut(), text)
	bipring.With(func(cs bipring.CS) { g.Commit(cs, len(text)) })
	fmtx.Printf("wrote %d byte(s)\n", len(text))
}

func cmdRead(r bipring.Ring) {
	var g *bipring.ReadGrant
	var err error
	bipring.With(func(cs bipring.CS) { g, err = r.Read(cs) })
	if err != nil {
		fmtx.Printf("read: %v\n", err)
		return
	}
	fmtx.Printf("read %d byte(s): %q\n", g.Len(), string(g.Buf()))
	bipring.With(func(cs bipring.CS) { g.Commit(cs, g.Len()) })
}

func cmdHex(r bipring.Ring) {
	var g *bipring.ReadGrant
	var err error
	bipring.With(func(cs bipring.CS) { g, err = r.Read(cs) })
	if err != nil {
		fmtx.Printf("hex: %v\n", err)
		return
	}
	buf := g.Buf()
	line := make([]byte, 8)
	for i := 0; i < len(buf); i += 4 {
		end := i + 4
		if end > len(buf) {
			end = len(buf)
		}
		var word uint32
		for _, b := range buf[i:end] {
			word = word<<8 | uint32(b)
		}
		fmtx.Printf("%s\n", string(conv.U32Hex(line, word)))
	}
	bipring.With(func(cs bipring.CS) { g.Release(cs) })
}
