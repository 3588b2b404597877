package policy

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-markdown/pkg/interfaces"
)

//go:embed schema.json
var overrideSchema []byte

const policyInvalidCode = "MARKDOWN_POLICY_INVALID"

// overrideFile mirrors the JSON overlay format hosts can ship alongside their
// deployment. Absent sections fall back to the built-in defaults; a provided
// list replaces its default counterpart wholesale.
type overrideFile struct {
	Limits *struct {
		MaxContentLength *int `json:"max_content_length"`
		MaxLinkCount     *int `json:"max_link_count"`
		MaxNestingDepth  *int `json:"max_nesting_depth"`
		MaxTableCells    *int `json:"max_table_cells"`
		MaxLineLength    *int `json:"max_line_length"`
	} `json:"limits"`
	AllowedProtocols  []string `json:"allowed_protocols"`
	AllowedHTMLTags   []string `json:"allowed_html_tags"`
	StrictHTMLTags    []string `json:"strict_html_tags"`
	SuspiciousDomains []string `json:"suspicious_domains"`
	DangerousPatterns []struct {
		Name     string `json:"name"`
		Code     string `json:"code"`
		Severity string `json:"severity"`
		Pattern  string `json:"pattern"`
	} `json:"dangerous_patterns"`
}

// Parse validates the JSON overlay against the embedded schema and merges it
// onto the default policy. Configuration mistakes are programming errors, so
// unlike content processing this path does return errors.
func Parse(data []byte) (*Policy, error) {
	if err := validateOverride(data); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "policy override rejected").
			WithTextCode(policyInvalidCode)
	}

	var override overrideFile
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "policy override is not valid JSON").
			WithTextCode(policyInvalidCode)
	}

	p := Default()

	if override.Limits != nil {
		applyLimit(&p.Limits.MaxContentLength, override.Limits.MaxContentLength)
		applyLimit(&p.Limits.MaxLinkCount, override.Limits.MaxLinkCount)
		applyLimit(&p.Limits.MaxNestingDepth, override.Limits.MaxNestingDepth)
		applyLimit(&p.Limits.MaxTableCells, override.Limits.MaxTableCells)
		applyLimit(&p.Limits.MaxLineLength, override.Limits.MaxLineLength)
	}
	if len(override.AllowedProtocols) > 0 {
		p.AllowedProtocols = append([]string(nil), override.AllowedProtocols...)
	}
	if len(override.AllowedHTMLTags) > 0 {
		p.AllowedHTMLTags = append([]string(nil), override.AllowedHTMLTags...)
	}
	if len(override.StrictHTMLTags) > 0 {
		p.StrictHTMLTags = append([]string(nil), override.StrictHTMLTags...)
	}
	if len(override.SuspiciousDomains) > 0 {
		p.SuspiciousDomains = append([]string(nil), override.SuspiciousDomains...)
	}
	if len(override.DangerousPatterns) > 0 {
		rules := make([]PatternRule, 0, len(override.DangerousPatterns))
		for _, entry := range override.DangerousPatterns {
			compiled, err := regexp.Compile(entry.Pattern)
			if err != nil {
				return nil, goerrors.Wrap(err, goerrors.CategoryValidation,
					fmt.Sprintf("policy pattern %q does not compile", entry.Name)).
					WithTextCode(policyInvalidCode)
			}
			code := strings.TrimSpace(entry.Code)
			if code == "" {
				code = interfaces.CodeSecurityError
			}
			severity := Severity(strings.ToLower(entry.Severity))
			if severity == "" {
				severity = SeverityStrict
			}
			rules = append(rules, PatternRule{
				Name:     entry.Name,
				Code:     code,
				Severity: severity,
				Pattern:  compiled,
			})
		}
		p.DangerousPatterns = rules
	}

	p.index()
	return p, nil
}

// LoadFile reads a JSON policy overlay from disk and parses it.
func LoadFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("policy: read %s: %w", path, err)
	}
	return Parse(data)
}

func applyLimit(target *int, value *int) {
	if value != nil && *value > 0 {
		*target = *value
	}
}

func validateOverride(data []byte) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("policy.schema.json", bytes.NewReader(overrideSchema)); err != nil {
		return err
	}
	schema, err := compiler.Compile("policy.schema.json")
	if err != nil {
		return err
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	return schema.Validate(payload)
}
