package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalid/pkg/form"
	"github.com/goliatone/go-formvalid/pkg/i18n"
	"github.com/goliatone/go-formvalid/pkg/rules"
	"github.com/goliatone/go-formvalid/pkg/validate"
)

func main() {
	formPath := flag.String("form", "form.yaml", "form definition path (YAML)")
	valuesPath := flag.String("values", "", "submitted values path (JSON); empty values validate the blank form")
	catalogPath := flag.String("catalog", "", "translation catalog path (YAML)")
	locale := flag.String("locale", "", "locale for translated messages")
	output := flag.String("output", "", "report output file (stdout if empty)")
	flag.Parse()

	def, err := loadDefinition(*formPath)
	if err != nil {
		log.Fatalf("Failed to load form definition: %v", err)
	}

	var submission submission
	if *valuesPath != "" {
		submission, err = loadSubmission(*valuesPath)
		if err != nil {
			log.Fatalf("Failed to load values: %v", err)
		}
	}

	options := []validate.Option{
		validate.WithDefaultStrategy(rules.New()),
	}
	if *catalogPath != "" {
		catalog := i18n.NewCatalog()
		if err := catalog.LoadFile(*catalogPath); err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
		options = append(options, validate.WithTranslator(catalog.Func(*locale)))
	}

	tree, err := buildForm(def, submission)
	if err != nil {
		log.Fatalf("Failed to build form tree: %v", err)
	}

	out, err := validate.New(options...).Validate(tree)
	if err != nil {
		log.Fatalf("Failed to validate: %v", err)
	}

	payload, err := json.MarshalIndent(buildReport(out), "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
	payload = append(payload, '\n')

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		fmt.Printf("Report written to %s\n", *output)
	} else {
		os.Stdout.Write(payload)
	}

	if !out.Valid {
		os.Exit(1)
	}
}

// definition mirrors the YAML form description: one level of fields plus the
// nested and collection relations hanging off it.
type definition struct {
	Type        typeDef         `yaml:"type"`
	Fields      []fieldDef      `yaml:"fields"`
	Nested      []nestedDef     `yaml:"nested"`
	Collections []collectionDef `yaml:"collections"`
}

type typeDef struct {
	Name      string `yaml:"name"`
	Validator string `yaml:"validator"`
}

type fieldDef struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Required    bool      `yaml:"required"`
	Label       string    `yaml:"label"`
	Validations []ruleDef `yaml:"validations"`
}

type ruleDef struct {
	Kind   string            `yaml:"kind"`
	Params map[string]string `yaml:"params"`
}

type nestedDef struct {
	Name string     `yaml:"name"`
	Form definition `yaml:"form"`
}

type collectionDef struct {
	Name       string     `yaml:"name"`
	RemovalKey string     `yaml:"removalKey"`
	Form       definition `yaml:"form"`
}

// submission mirrors the JSON values document: values for this level, one
// document per nested relation, and an entry list per collection.
type submission struct {
	Values      map[string]any        `json:"values"`
	Nested      map[string]submission `json:"nested"`
	Collections map[string][]entryDoc `json:"collections"`
}

type entryDoc struct {
	Removed bool `json:"removed"`
	submission
}

func loadDefinition(path string) (definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return definition{}, err
	}
	var def definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return definition{}, fmt.Errorf("parse %q: %w", path, err)
	}
	return def, nil
}

func loadSubmission(path string) (submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return submission{}, err
	}
	var doc submission
	if err := json.Unmarshal(data, &doc); err != nil {
		return submission{}, fmt.Errorf("parse %q: %w", path, err)
	}
	return doc, nil
}

// buildForm combines the static definition with a submission document into
// the tree the engine consumes. Collection entries take their count from the
// submission since the definition only describes the element shape.
func buildForm(def definition, doc submission) (*form.Form, error) {
	out := &form.Form{
		Type:   form.Type{Name: def.Type.Name, Validator: def.Type.Validator},
		Values: doc.Values,
	}

	for _, fd := range def.Fields {
		field := form.Field{
			Name:     fd.Name,
			Type:     form.FieldType(fd.Type),
			Required: fd.Required,
			Label:    fd.Label,
		}
		for _, rd := range fd.Validations {
			field.Validations = append(field.Validations, form.ValidationRule{
				Kind:   rd.Kind,
				Params: rd.Params,
			})
		}
		out.Items = append(out.Items, field)
	}

	for _, nd := range def.Nested {
		child, err := buildForm(nd.Form, doc.Nested[nd.Name])
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, form.Nested{Name: nd.Name, Form: child})
	}

	for _, cd := range def.Collections {
		collection := form.Collection{Name: cd.Name, RemovalKey: cd.RemovalKey}
		for _, entry := range doc.Collections[cd.Name] {
			child, err := buildForm(cd.Form, entry.submission)
			if err != nil {
				return nil, err
			}
			collection.Entries = append(collection.Entries, form.CollectionEntry{
				Form:    child,
				Removed: entry.Removed,
			})
		}
		out.Items = append(out.Items, collection)
	}

	return out, nil
}

// report is the JSON shape printed after validation, mirroring the tree.
type report struct {
	Type        string              `json:"type,omitempty"`
	Valid       bool                `json:"valid"`
	Errors      form.Errors         `json:"errors,omitempty"`
	Nested      map[string]report   `json:"nested,omitempty"`
	Collections map[string][]report `json:"collections,omitempty"`
}

func buildReport(f *form.Form) report {
	out := report{
		Type:   f.Type.Name,
		Valid:  f.Valid,
		Errors: f.Errors,
	}
	for _, item := range f.Items {
		switch it := item.(type) {
		case form.Nested:
			if it.Form == nil {
				continue
			}
			if out.Nested == nil {
				out.Nested = make(map[string]report)
			}
			out.Nested[it.Name] = buildReport(it.Form)
		case form.Collection:
			if out.Collections == nil {
				out.Collections = make(map[string][]report)
			}
			entries := make([]report, 0, len(it.Entries))
			for _, entry := range it.Entries {
				if entry.Form == nil {
					continue
				}
				entries = append(entries, buildReport(entry.Form))
			}
			out.Collections[it.Name] = entries
		}
	}
	return out
}
