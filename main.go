package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cardlens/statement-parser/internal/config"
	"github.com/cardlens/statement-parser/internal/document"
	"github.com/cardlens/statement-parser/internal/parser"
	"github.com/cardlens/statement-parser/internal/schema"
)

func main() {
	issuerFlag := flag.String("issuer", "", "Issuer code: axis, hdfc, icici, idfc, rbl (required)")
	compactFlag := flag.Bool("compact", false, "Emit compact JSON instead of indented")
	verboseFlag := flag.Bool("verbose", false, "Log extraction progress to stderr")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Credit-Card Statement PDF Parser

Extracts cardholder identity, billing summary figures and the itemized
transaction list from credit-card statement PDFs and prints them as JSON.

Usage:
  statement-parser -issuer <code> <statement.pdf> [statement2.pdf ...]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  statement-parser -issuer hdfc statement.pdf
  statement-parser -issuer axis -compact may.pdf jun.pdf

Supported issuers:
  axis    - AXIS Bank
  hdfc    - HDFC Bank
  icici   - ICICI Bank
  idfc    - IDFC FIRST Bank
  rbl     - RBL Bank
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-parser v%s\n", config.Version)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *issuerFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verboseFlag {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	for _, path := range flag.Args() {
		if err := processFile(log, *issuerFlag, path, *compactFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", path, err)
			os.Exit(1)
		}
	}
}

func processFile(log *logrus.Logger, issuerCode, path string, compact bool) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return fmt.Errorf("expected .pdf file, got %q", ext)
	}

	doc, err := document.OpenPDF(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	log.WithFields(logrus.Fields{"issuer": issuerCode, "file": path}).Debug("parsing statement")

	result, err := parser.Parse(issuerCode, doc)
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		log.WithField("file", path).Warn(warning)
	}

	resp := schema.Assemble(result)
	var out []byte
	if compact {
		out, err = json.Marshal(resp)
	} else {
		out, err = json.MarshalIndent(resp, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
