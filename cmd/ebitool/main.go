// ebitool is a small command line frontend for the EBI web services:
// entry retrieval via dbfetch, UniProt search, and BLAST/ClustalW job
// submission through the Job Dispatcher.
//
// Configuration comes from ebitool.json in the working directory or
// EBITOOL_* environment variables; only the contact email is required.
package main

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/binfgo/ebi/dbfetch"
	"github.com/binfgo/ebi/tools"
	"github.com/binfgo/ebi/uniprot"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	switch os.Args[1] {
	case "fetch":
		err = runFetch(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	case "blast":
		err = runBlast(cfg, os.Args[2:])
	case "clustalw":
		err = runClustalW(cfg, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: ebitool <command> [args]

commands:
  fetch <id> [db] [format]       retrieve one entry via dbfetch (default uniprotkb, fasta)
  search <query> [limit]         list UniProt accessions matching a query
  blast <fasta file> [db ...]    run a protein BLAST job (default db uniprotkb_swissprot)
  clustalw <fasta file>          run a ClustalW alignment job`)
}

func setupLogger(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

func runFetch(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("fetch: entry id required")
	}
	db, format := "uniprotkb", "fasta"
	if len(args) > 1 {
		db = args[1]
	}
	if len(args) > 2 {
		format = args[2]
	}

	entry, err := dbfetch.Fetch(args[0], db, format)
	if err != nil {
		return err
	}
	fmt.Print(entry)
	return nil
}

func runSearch(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("search: query required")
	}
	limit := 100
	if len(args) > 1 {
		var err error
		if limit, err = strconv.Atoi(args[1]); err != nil {
			return fmt.Errorf("search: bad limit %q", args[1])
		}
	}

	ids, err := uniprot.Search(args[0], limit)
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(ids, "\n"))
	return nil
}

func newJobClient(cfg *Config, service string) *tools.Client {
	return tools.New(service,
		tools.WithEmail(cfg.Email),
		tools.WithBaseURL(cfg.BaseURL),
		tools.WithPollInterval(cfg.PollInterval),
		tools.WithPollDeadline(cfg.PollDeadline),
		tools.WithLockStore(tools.NewFileLockStore(cfg.LockDir)),
	)
}

func runBlast(cfg *Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("blast: fasta file required")
	}
	seq, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	databases := args[1:]
	if len(databases) == 0 {
		databases = []string{"uniprotkb_swissprot"}
	}

	out, err := newJobClient(cfg, "ncbiblast").SubmitOne(url.Values{
		"program":  {"blastp"},
		"stype":    {"protein"},
		"sequence": {string(seq)},
		"database": databases,
	}, "out")
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func runClustalW(cfg *Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("clustalw: fasta file required")
	}
	seqs, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	out, err := newJobClient(cfg, "clustalw2").SubmitOne(url.Values{
		"sequence": {string(seqs)},
	}, "aln")
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
