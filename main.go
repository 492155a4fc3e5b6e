package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rill-lang/rill/config"
	"github.com/rill-lang/rill/lexer"
	"github.com/rill-lang/rill/lexsvc"
	"github.com/rill-lang/rill/tools"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		serve       = flag.Bool("serve", false, "Start the lexer HTTP/WebSocket service")
		port        = flag.Int("port", 8080, "Service port (used with -serve)")
		dump        = flag.Bool("dump", false, "Print every decoded token instead of a summary")
		offsets     = flag.Bool("offsets", false, "Prefix dumped tokens with their byte offset (used with -dump)")
		configPath  = flag.String("config", "", "Path to a TOML config file (default: platform config dir)")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("rill %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	opts := lexer.Options{
		LCodeIncLog2:      cfg.Buffers.LCodeIncLog2,
		StringIncLog2:     cfg.Buffers.StringIncLog2,
		IdentIncLog2:      cfg.Buffers.IdentIncLog2,
		StringDedupCutoff: cfg.Lexer.StringDedupCutoff,
	}

	if *serve {
		runServer(*port, opts)
		return
	}

	if flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	runLex(flag.Arg(0), opts, *dump, *offsets)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func runLex(path string, opts lexer.Options, dump bool, offsets bool) {
	var src lexer.Source
	if path == "-" {
		src = &readerSource{r: os.Stdin}
	} else {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
			os.Exit(1)
		}
		defer f.Close()
		src = &readerSource{r: f}
	}

	out, err := lexer.LexWithOptions(src, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Lex error: %v\n", err)
		os.Exit(1)
	}

	if dump {
		fmt.Print(tools.DumpLCode(out, tools.DumpOptions{ShowOffsets: offsets}))
		return
	}

	summary := tools.Summarize(out)
	fmt.Printf("tokens: %d\n", summary.TokenCount)
	fmt.Printf("strings: %d\n", summary.StringCnt)
	fmt.Printf("identifiers: %d\n", summary.IdentCnt)
	fmt.Printf("lines: %d\n", summary.FinalLine)
}

func runServer(port int, opts lexer.Options) {
	server := lexsvc.NewServer(port, opts)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var shutdownOnce sync.Once
	performShutdown := func() {
		shutdownOnce.Do(func() {
			fmt.Println("\nShutting down lex service...")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
				os.Exit(1)
			}

			fmt.Println("lex service stopped")
			os.Exit(0)
		})
	}

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "lex service error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-sigChan
	performShutdown()
}

func printHelp() {
	fmt.Println("rill - lexer for the rill scripting language")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  rill [flags] <file>   Lex a source file and print a summary")
	fmt.Println("  rill -dump <file>     Lex a source file and print every token")
	fmt.Println("  rill -serve           Start the lexer HTTP/WebSocket service")
	fmt.Println()
	flag.PrintDefaults()
}

// readerSource adapts an io.Reader to lexer.Source, buffering one byte at
// a time the same way utf8stream.Filter pulls from any other source.
type readerSource struct {
	r   io.Reader
	buf [1]byte
}

func (s *readerSource) ReadByte() (byte, bool) {
	n, _ := s.r.Read(s.buf[:])
	// Read may legitimately return n > 0 together with io.EOF in the same
	// call (common for pipes and stdin); the byte must still be delivered
	// before the error ends the stream.
	if n > 0 {
		return s.buf[0], true
	}
	return 0, false
}
