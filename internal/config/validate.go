// Package config provides configuration models and helpers for the pipeline.
//
// This file adds a lightweight linter for Pipeline values. Struct-tag rules
// are checked with go-playground/validator and folded into the same Issue
// list as the semantic checks so callers see one report.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into the
// config (e.g. "storage.db.dsn", "transform[1].kind").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// TransformKinds lists the transform kinds the pipeline knows how to build.
var TransformKinds = []string{
	"normalize",
	"dedup",
	"display_name",
	"drop",
	"split_born",
	"split_location",
	"split_region",
	"split_measurements",
	"require",
	"default",
	"impute",
	"fill_date",
	"round",
	"project",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report paths using the json names so they match the pipeline file.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	issues = append(issues, structIssues(p)...)
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateTransforms(p.Transform)...)
	issues = append(issues, validateStorage(p.Storage)...)

	return issues
}

// structIssues converts validator tag failures into issues.
func structIssues(p Pipeline) []Issue {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Severity: SeverityError, Path: "", Message: err.Error()}}
	}
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		msg := fmt.Sprintf("failed %q rule", fe.Tag())
		switch fe.Tag() {
		case "required":
			msg = "must not be empty"
		case "oneof":
			msg = fmt.Sprintf("must be one of [%s]", fe.Param())
		}
		issues = append(issues, Issue{Severity: SeverityError, Path: path, Message: msg})
	}
	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue
	switch s.Kind {
	case "":
		// reported by the struct rules
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.file.path",
				Message:  "file source requires a non-empty path",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q", s.Kind),
		})
	}
	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue
	switch p.Kind {
	case "":
	case "csv":
		if enc := p.Options.String("encoding", ""); enc != "" {
			switch strings.ToLower(enc) {
			case "utf-8", "utf8", "windows-1252", "cp1252", "iso-8859-1", "latin1":
			default:
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     "parser.options.encoding",
					Message:  fmt.Sprintf("unsupported encoding %q", enc),
				})
			}
		}
		if !p.Options.Bool("has_header", true) {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "parser.options.has_header",
				Message:  "has_header=false; columns will be named col_N and the default chain will not find its fields",
			})
		}
	case "xlsx":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  fmt.Sprintf("unknown parser kind %q", p.Kind),
		})
	}
	return issues
}

func validateTransforms(ts []Transform) []Issue {
	var issues []Issue
	known := make(map[string]struct{}, len(TransformKinds))
	for _, k := range TransformKinds {
		known[k] = struct{}{}
	}

	projectAt := -1
	for i, t := range ts {
		if t.Kind == "" {
			continue
		}
		if _, ok := known[t.Kind]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("transform[%d].kind", i),
				Message:  fmt.Sprintf("unknown transform kind %q", t.Kind),
			})
			continue
		}
		switch t.Kind {
		case "require":
			if len(t.Options.StringSlice("fields")) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Path:     fmt.Sprintf("transform[%d].options.fields", i),
					Message:  "require transform has no fields; it will not drop anything",
				})
			}
		case "drop":
			if len(t.Options.StringSlice("columns")) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Path:     fmt.Sprintf("transform[%d].options.columns", i),
					Message:  "drop transform has no columns",
				})
			}
		case "project":
			projectAt = i
		}
	}
	if len(ts) > 0 && projectAt != len(ts)-1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "transform",
			Message:  "the last transform must be project so the output schema is fixed",
		})
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue
	if !s.Enabled() {
		return nil
	}

	switch s.Kind {
	case "postgres", "mysql", "mssql", "sqlite":
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}
	if strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  "storage.db.dsn must not be empty",
		})
	}
	if strings.TrimSpace(s.DB.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.table",
			Message:  "storage.db.table must not be empty",
		})
	}
	return issues
}
