// Package gen renders the extraction result into the generated C++
// stringification source and writes it to disk atomically.
package gen

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/c360studio/castrings/extract"
)

// Meta identifies the generator run in the output header comment.
type Meta struct {
	// Generator is the tool name recorded in the generated file.
	Generator string
	// Source is the header path the constants came from.
	Source string
}

// templateData is the flattened, pre-sorted view the template consumes.
// Only names are emitted; the C++ compiler resolves each name against
// the real header at build time.
type templateData struct {
	Generator   string
	Source      string
	Classes     []string
	Selectors   []string
	Scopes      []string
	Operations  []string
	Errors      []string
	FormatIDs   []string
	FormatFlags []string
}

var sourceTemplate = template.Must(template.New("strings").Parse(`// THIS FILE IS AUTO-GENERATED. DO NOT EDIT!

// Generator: {{.Generator}}
// Source: {{.Source}}

// Copyright (c) libASPL authors
// Licensed under MIT

#include "Strings.hpp"

namespace aspl {

std::string ClassIDToString(AudioClassID classID)
{
    switch (classID) {
{{- range .Classes}}
    case {{.}}:
        return "{{.}}";
{{- end}}
    default:
        return CodeToString(classID);
    }
}

std::string PropertySelectorToString(AudioObjectPropertySelector selector)
{
    switch (selector) {
{{- range .Selectors}}
    case {{.}}:
        return "{{.}}";
{{- end}}
    default:
        return CodeToString(selector);
    }
}

std::string PropertyScopeToString(AudioObjectPropertyScope scope)
{
    switch (scope) {
{{- range .Scopes}}
    case {{.}}:
        return "{{.}}";
{{- end}}
    default:
        return CodeToString(scope);
    }
}

std::string OperationIDToString(UInt32 operationID)
{
    switch (operationID) {
{{- range .Operations}}
    case {{.}}:
        return "{{.}}";
{{- end}}
    default:
        return CodeToString(operationID);
    }
}

std::string StatusToString(OSStatus status)
{
    switch (status) {
    case kAudioHardwareNoError:
        return "OK";
{{- range .Errors}}
    case {{.}}:
        return "{{.}}";
{{- end}}
    default:
        return CodeToString(UInt32(status));
    }
}

std::string FormatIDToString(AudioFormatID formatID)
{
    switch (formatID) {
{{- range .FormatIDs}}
    case {{.}}:
        return "{{.}}";
{{- end}}
    default:
        return CodeToString(formatID);
    }
}

std::string FormatFlagsToString(AudioFormatFlags formatFlags)
{
    std::string ret;
{{- range .FormatFlags}}
    if (formatFlags & {{.}}) {
        if (!ret.empty()) {
            ret += "|";
        }
        ret += "{{.}}";
    }
{{- end}}
    return ret;
}

} // namespace aspl
`))

// Render produces the generated source text for an extraction result.
// Every family is emitted in ascending name order, so rendering the
// same result twice yields identical bytes.
func Render(res *extract.Result, meta Meta) ([]byte, error) {
	data := templateData{
		Generator:   meta.Generator,
		Source:      meta.Source,
		Classes:     extract.SortedNames(res.Classes),
		Selectors:   extract.SortedNames(res.Selectors),
		Scopes:      extract.SortedNames(res.Scopes),
		Operations:  extract.SortedNames(res.Operations),
		Errors:      extract.SortedNames(res.Errors),
		FormatIDs:   extract.SortedNames(res.FormatIDs),
		FormatFlags: extract.SortedNames(res.FormatFlags),
	}

	var buf bytes.Buffer
	if err := sourceTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render strings source: %w", err)
	}
	return buf.Bytes(), nil
}
