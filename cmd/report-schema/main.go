package main

import (
	"flag"
	"log"
	"os"

	"github.com/cognicore/dailyline/pkg/dailyline/insights"
)

func main() {
	out := flag.String("out", "", "Write the schema to this file instead of stdout")
	flag.Parse()

	data, err := insights.SchemaJSON()
	if err != nil {
		log.Fatal("Failed to build schema:", err)
	}
	data = append(data, '\n')

	if *out == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal("Failed to write schema:", err)
	}
	log.Printf("Wrote %s", *out)
}
