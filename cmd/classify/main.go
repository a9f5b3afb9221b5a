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
	samplePath    = flag.String("sample", "", "Path to a file with one flattened EEG sample.")
	dryRun        = flag.Bool("dry_run", false, "Use an in-memory window instead of /dev/mem. Checks files and encodings only; scores are meaningless.")
)

// Motor-imagery classes of the BCI Competition IV 2a task, in score order.
var classNames = [regmap.NumClasses]string{"left hand", "right hand", "feet", "tongue"}

func main() {

	var win regwin.Window
	var err error

	flag.Parse()

	if *paramsPath == "" || *samplePath == "" {
		fmt.Println("Must specify a parameter file and a sample file")
		os.Exit(1)
	}

	if *bitstreamPath != "" && !*dryRun {
		if err := bitstream.Load(*bitstreamPath, bitstream.DefaultDevice); err != nil {
			fmt.Printf("Cannot program PL: %v\n", err)
			os.Exit(1)
		}
	}

	if *dryRun {
		mem := regwin.NewMemBuf(regmap.WinLen)
		// There is no logic behind an in-memory window, so report ready at
		// once; the scores read back as zero.
		if err := mem.WriteU16(regmap.Status.Offset, regmap.StatusReady); err != nil {
			fmt.Printf("Cannot prepare dry-run window: %v\n", err)
			os.Exit(1)
		}
		win = mem
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

	sampleSet, err := netparams.FromFile(*samplePath)
	if err != nil {
		fmt.Printf("Cannot read sample file: %v\n", err)
		os.Exit(1)
	}
	sample, err := sampleSet.First()
	if err != nil {
		fmt.Printf("Cannot get sample array: %v\n", err)
		os.Exit(1)
	}

	accel := qcnn.ForWindow(win)
	if err := accel.LoadParams(set); err != nil {
		fmt.Printf("Cannot load parameters: %v\n", err)
		os.Exit(1)
	}

	scores, err := accel.Classify(sample)
	if err != nil {
		fmt.Printf("Cannot classify sample: %v\n", err)
		os.Exit(1)
	}

	for i, s := range scores {
		fmt.Printf("%-10s % .6f\n", classNames[i], s)
	}
	fmt.Printf("Predicted class: %s\n", classNames[qcnn.Predict(scores)])
}
