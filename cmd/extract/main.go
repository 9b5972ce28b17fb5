package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"cdtire/adapters/excel"
	"cdtire/models"
)

// Offline extraction: run the workbook extractor against a local file and
// print the resulting test rows as JSON, without a database or server.
func main() {
	pressure := flag.String("pressure", "", "inflation pressure (bar) for the P1/P2 tokens")
	load1 := flag.String("load1", "", "load 1 (kg) for the L1 token")
	load2 := flag.String("load2", "", "load 2 (kg) for the L2 token")
	load3 := flag.String("load3", "", "load 3 (kg) for the L3 token")
	load4 := flag.String("load4", "", "load 4 (kg) for the L4 token")
	load5 := flag.String("load5", "", "load 5 (kg) for the L5 token")
	velocity := flag.String("velocity", "", "velocity (kmph) for the VEL token")
	inclination := flag.String("ia", "", "inclination angle (deg) for the IA/-IA tokens")
	slipRatio := flag.String("sr", "", "slip ratio for the SR/-SR tokens")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: extract [flags] <workbook.xlsx>")
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	inputs := models.MatrixInputs{
		Pressure:         *pressure,
		Load1:            *load1,
		Load2:            *load2,
		Load3:            *load3,
		Load4:            *load4,
		Load5:            *load5,
		Velocity:         *velocity,
		InclinationAngle: *inclination,
		SlipRatio:        *slipRatio,
	}

	rows, err := excel.NewExtractor().ExtractWorkbook(f, inputs)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		log.Fatalf("Failed to encode rows: %v", err)
	}

	log.Printf("Extracted %d test rows", len(rows))
}
