package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	formbind "github.com/reoring/formbind"
	"github.com/reoring/formbind/codec"
	"github.com/reoring/formbind/i18n"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: formbind validate -schema <def.yaml|def.json> -in <doc.json|doc.yaml|-> [-lang en|ja]")
}

// validateCmd runs the one-shot validator: a document against a declarative
// form definition. Exit 0 when valid, 1 when any leaf fails.
func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	schemaPath := fs.String("schema", "", "form definition file (.yaml/.yml/.json)")
	inPath := fs.String("in", "", "document to validate (.json/.yaml/.yml); '-' reads JSON from stdin")
	lang := fs.String("lang", "", "message language (en/ja)")
	_ = fs.Parse(args)

	if *schemaPath == "" || *inPath == "" {
		usage()
		os.Exit(2)
	}
	if *lang != "" {
		i18n.SetLanguage(*lang)
	}

	defData, err := os.ReadFile(*schemaPath)
	if err != nil {
		fatal(err)
	}
	schema, err := loadSchema(*schemaPath, defData)
	if err != nil {
		fatal(err)
	}

	doc, err := readDocument(*inPath)
	if err != nil {
		fatal(err)
	}

	iss := formbind.ValidateIssues(doc, schema)
	if len(iss) == 0 {
		fmt.Println("ok")
		return
	}
	for _, it := range iss {
		fmt.Fprintf(os.Stderr, "%s at %s: %s\n", it.Code, it.Path, it.Message)
	}
	os.Exit(1)
}

func loadSchema(path string, data []byte) (*formbind.SchemaNode, error) {
	if filepath.Ext(path) == ".json" {
		return codec.SchemaFromJSON(data)
	}
	return codec.SchemaFromYAML(data)
}

func readDocument(path string) (map[string]any, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return codec.ValueFromJSON(data)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return codec.ValueFromYAML(data)
	default:
		return codec.ValueFromJSON(data)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "formbind:", err)
	os.Exit(1)
}
