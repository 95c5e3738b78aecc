package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"patgen"
)

type config struct {
	File  string `env:"PATGEN_FILE"`
	Count int    `env:"PATGEN_COUNT" envDefault:"1"`
	Seed  int64  `env:"PATGEN_SEED"`
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// A .env file is optional.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Error("parse environment", "error", err)
		os.Exit(2)
	}

	file := flag.String("f", cfg.File, "definition file (.json, .yaml, or name = pattern lines)")
	count := flag.Int("n", cfg.Count, "number of strings to generate")
	seed := flag.Int64("seed", cfg.Seed, "random seed (0 seeds from the clock)")
	flag.Parse()

	if *file == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: patgen -f <file> [-n count] [-seed n] <name>")
		os.Exit(2)
	}
	name := flag.Arg(0)

	reg := patgen.NewRegistry()
	if err := reg.LoadFile(*file); err != nil {
		log.Error("load definitions", "file", *file, "error", err)
		os.Exit(1)
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rnd := patgen.NewPseudoRand(s)

	for i := 0; i < *count; i++ {
		out, err := reg.Generate(name, rnd)
		if err != nil {
			log.Error("generate", "name", name, "error", err)
			os.Exit(1)
		}
		fmt.Println(out)
	}
}
