package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	formwizard "github.com/goliatone/go-formwizard"
	pkgopenapi "github.com/goliatone/go-formwizard/pkg/openapi"
	"github.com/goliatone/go-formwizard/pkg/renderers/fullscreen"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

func main() {
	definition := flag.String("definition", "", "wizard definition file (JSON or YAML)")
	source := flag.String("openapi", "", "OpenAPI document path or URL")
	operation := flag.String("operation", "", "operation ID to derive the wizard from")
	renderer := flag.String("renderer", "tui", "renderer to use (tui|fullscreen)")
	output := flag.String("output", "", "output file for collected values (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	def, err := loadDefinition(ctx, *definition, *source, *operation)
	if err != nil {
		log.Fatalf("Failed to load wizard definition: %v", err)
	}

	values, err := formwizard.Run(ctx, def, *renderer)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, fullscreen.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			os.Exit(1)
		}
		log.Fatalf("Failed to run wizard: %v", err)
	}

	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode values: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Values written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}

func loadDefinition(ctx context.Context, definitionPath, source, operation string) (schema.Wizard, error) {
	switch {
	case definitionPath != "":
		data, err := os.ReadFile(definitionPath)
		if err != nil {
			return schema.Wizard{}, err
		}
		return schema.Parse(data, definitionPath)

	case source != "":
		if operation == "" {
			return schema.Wizard{}, errors.New("-operation is required with -openapi")
		}
		return pkgopenapi.WizardFromSource(ctx, parseSource(source), operation,
			pkgopenapi.WizardOptions{},
			pkgopenapi.WithHTTPFallback(30*time.Second))

	default:
		return schema.Wizard{}, errors.New("one of -definition or -openapi is required")
	}
}

func parseSource(raw string) pkgopenapi.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgopenapi.SourceFromURL(path)
	}
	return pkgopenapi.SourceFromFile(path)
}
