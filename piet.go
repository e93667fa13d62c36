package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bdwalton/piet/block"
	"github.com/bdwalton/piet/grid"
	"github.com/bdwalton/piet/imgsrc"
	"github.com/bdwalton/piet/palette"
	"github.com/bdwalton/piet/vm"
	"github.com/bdwalton/piet/watch"
)

var (
	imagePath    = flag.String("image", "", "Path to the Piet program image to run.")
	codelSize    = flag.Int("codel-size", 0, "Codel size to use, in pixels. 0 auto-detects it.")
	fallToWhite  = flag.Bool("fall-back-to-white", false, "Treat any pixel that isn't a palette colour as White instead of failing.")
	fallToBlack  = flag.Bool("fall-back-to-black", false, "Treat any pixel that isn't a palette colour as Black instead of failing.")
	maxIter      = flag.Int("max-iter", 0, "Stop after this many traversal steps. 0 means no limit.")
	verbose      = flag.Bool("verbose", false, "Print the codel grid and trace every executed command to stderr.")
	watchProgram = flag.Bool("watch", false, "Open a visual debugger instead of running straight through.")
)

func main() {
	flag.Parse()

	if *fallToWhite && *fallToBlack {
		log.Fatalf("--fall-back-to-white and --fall-back-to-black are mutually exclusive")
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		log.Fatalf("Couldn't open %q: %v", *imagePath, err)
	}
	defer f.Close()

	pixels, err := imgsrc.Decode(f)
	if err != nil {
		log.Fatalf("Couldn't decode %q: %v", *imagePath, err)
	}

	opts := grid.Options{}
	if *codelSize > 0 {
		opts.CodelSize = codelSize
	}
	if *fallToWhite {
		c := palette.White
		opts.Fallback = &c
	} else if *fallToBlack {
		c := palette.Black
		opts.Fallback = &c
	}

	g, err := grid.Build(pixels, opts)
	if err != nil {
		log.Fatalf("Couldn't prepare the codel grid: %v", err)
	}

	idx := block.Build(g)
	state := vm.NewState(os.Stdin, os.Stdout)
	engine, err := vm.NewEngine(g, idx, state)
	if err != nil {
		log.Fatalf("Couldn't start the program: %v", err)
	}
	if *maxIter > 0 {
		engine.MaxIter = maxIter
	}
	if *verbose {
		fmt.Fprint(os.Stderr, g)
		engine.Trace = os.Stderr
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	if *watchProgram {
		ebiten.SetWindowSize(g.W*watch.Scale, g.H*watch.Scale)
		ebiten.SetWindowTitle("piet")
		game := watch.New(ctx, g, engine)
		if err := watch.Run(ctx, game); err != nil {
			log.Fatal(err)
		}
		cancel()
		os.Exit(0)
	}

	reason := engine.Run(ctx)
	cancel()

	// Every termination the engine can reach on its own (eight blocked
	// exits, a white-region loop, or the --max-iter cap) is a clean
	// shutdown; only external cancellation gets a distinct exit code.
	if reason == vm.MaxIterReached {
		fmt.Println(reason)
	}
	if reason == vm.Canceled {
		os.Exit(130)
	}
	os.Exit(0)
}
