package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema []byte

// VerifyAgainstEmbeddedSchema checks that every field of the loaded config is declared by the
// embedded JSON schema and that all required fields of declared objects are present
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	return verify(embeddedSchema, cfg)
}

func verify(schemaData []byte, cfg *Config) error {
	var schema schemaNode
	if err := json.Unmarshal(schemaData, &schema); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	v := verifier{defs: schema.Defs}
	root := v.resolve(&schema)
	v.object(root, configMap, "")
	if len(v.problems) > 0 {
		sort.Strings(v.problems)
		return fmt.Errorf("config doesn't match schema: %s", strings.Join(v.problems, "; "))
	}
	return nil
}

// schemaNode is the subset of a JSON schema the verifier walks
type schemaNode struct {
	Ref                  string                 `json:"$ref"`
	Defs                 map[string]*schemaNode `json:"$defs"`
	Properties           map[string]*schemaNode `json:"properties"`
	Required             []string               `json:"required"`
	Items                *schemaNode            `json:"items"`
	AdditionalProperties json.RawMessage        `json:"additionalProperties"`
}

// valueSchema returns the schema of map values, nil when additionalProperties is a boolean
func (s *schemaNode) valueSchema() *schemaNode {
	if len(s.AdditionalProperties) == 0 || s.AdditionalProperties[0] != '{' {
		return nil
	}
	var vs schemaNode
	if err := json.Unmarshal(s.AdditionalProperties, &vs); err != nil {
		return nil
	}
	return &vs
}

type verifier struct {
	defs     map[string]*schemaNode
	problems []string
}

// resolve follows a local $ref to its definition
func (v *verifier) resolve(s *schemaNode) *schemaNode {
	for s != nil && s.Ref != "" {
		name := strings.TrimPrefix(s.Ref, "#/$defs/")
		def, ok := v.defs[name]
		if !ok {
			v.problems = append(v.problems, "unknown reference "+s.Ref)
			return nil
		}
		s = def
	}
	return s
}

func (v *verifier) object(s *schemaNode, values map[string]any, path string) {
	if s == nil || s.Properties == nil {
		return
	}
	for _, req := range s.Required {
		if _, ok := values[req]; !ok {
			v.problems = append(v.problems, path+req+" is required")
		}
	}
	for key, val := range values {
		prop, ok := s.Properties[key]
		if !ok {
			v.problems = append(v.problems, path+key+" is not declared")
			continue
		}
		v.value(v.resolve(prop), val, path+key)
	}
}

func (v *verifier) value(s *schemaNode, val any, path string) {
	if s == nil {
		return
	}
	switch tv := val.(type) {
	case map[string]any:
		if vs := s.valueSchema(); vs != nil && s.Properties == nil {
			for k, item := range tv {
				v.value(v.resolve(vs), item, path+"."+k)
			}
			return
		}
		v.object(s, tv, path+".")
	case []any:
		if s.Items == nil {
			return
		}
		for i, item := range tv {
			v.value(v.resolve(s.Items), item, fmt.Sprintf("%s[%d]", path, i))
		}
	}
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
