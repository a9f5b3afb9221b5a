package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eneriz-daniel/mibci-qcnns/pkg/bitstream"
	"github.com/eneriz-daniel/mibci-qcnns/pkg/netparams"
	"github.com/eneriz-daniel/mibci-qcnns/pkg/qcnn"
	"github.com/eneriz-daniel/mibci-qcnns/pkg/regmap"
	"github.com/eneriz-daniel/mibci-qcnns/pkg/regwin"
)

var (
	bitstreamPath = flag.String("bitstream", "", "Path to the accelerator bitstream (.bit file). Empty skips PL programming.")
	paramsPath    = flag.String("params", "", "Path to the network parameter file.")
	dryRun        = flag.Bool("dry_run", false, "Use an in-memory window instead of /dev/mem.")
)

func main() {

	var win regwin.Window
	var err error

	flag.Parse()

	if *paramsPath == "" {
		fmt.Println("Must specify a parameter file")
		os.Exit(1)
	}

	if *bitstreamPath != "" && !*dryRun {
		if err := bitstream.Load(*bitstreamPath, bitstream.DefaultDevice); err != nil {
			fmt.Printf("Cannot program PL: %v\n", err)
			os.Exit(1)
		}
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

	set, err := netparams.FromFile(*paramsPath)
	if err != nil {
		fmt.Printf("Cannot read parameter file: %v\n", err)
		os.Exit(1)
	}

	accel := qcnn.ForWindow(win)
	if err := accel.LoadParams(set); err != nil {
		fmt.Printf("Cannot load parameters: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d tensors into %s\n", set.NumArrays(), win.Name())
}
