package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/eneriz-daniel/mibci-qcnns/pkg/fixpoint"
	"github.com/eneriz-daniel/mibci-qcnns/pkg/regmap"
	"github.com/eneriz-daniel/mibci-qcnns/pkg/regwin"
)

var (
	addrStr  = flag.String("addr", "", "Byte offset within the register window (like 0x700).")
	writeVal = flag.String("write", "", "Real value to write. Empty reads the register instead.")
	intBits  = flag.Int("ibits", fixpoint.DefaultIntBits, "Integer bits of the fixed-point format.")
	dryRun   = flag.Bool("dry_run", false, "Use an in-memory window instead of /dev/mem.")
)

func main() {

	var win regwin.Window
	var err error

	flag.Parse()

	if *addrStr == "" {
		fmt.Println("Must specify a register offset")
		os.Exit(1)
	}
	addr, err := strconv.ParseInt(*addrStr, 0, 64)
	if err != nil {
		fmt.Printf("Cannot parse offset %q: %v\n", *addrStr, err)
		os.Exit(1)
	}

	if *dryRun {
		win = regwin.NewMemBuf(regmap.WinLen)
	} else {
		win, err = regwin.OpenDevMem(regmap.PhysBase, regmap.WinLen)
		if err != nil {
			fmt.Printf("Cannot map register window: %v\n", err)
			os.Exit(1)
		}
	}
	defer win.Close()

	if reg, err := regmap.ForOffset(addr); err == nil {
		fmt.Printf("Offset 0x%X belongs to %s\n", addr, reg)
	} else {
		fmt.Printf("Offset 0x%X is not a named register of this design\n", addr)
	}

	if *writeVal != "" {
		v, err := strconv.ParseFloat(*writeVal, 64)
		if err != nil {
			fmt.Printf("Cannot parse value %q: %v\n", *writeVal, err)
			os.Exit(1)
		}
		if err := fixpoint.Write(win, addr, v, *intBits); err != nil {
			fmt.Printf("Cannot write register: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %v (raw %d) @ 0x%X\n", v, fixpoint.Encode(v, *intBits), addr)
		return
	}

	v, err := fixpoint.Read(win, addr, *intBits)
	if err != nil {
		fmt.Printf("Cannot read register: %v\n", err)
		os.Exit(1)
	}
	raw, err := win.ReadU16(addr)
	if err != nil {
		fmt.Printf("Cannot read register: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("0x%X = 0x%04X, %v as Q%d.%d\n", addr, raw, v, *intBits, 16-*intBits)
}
