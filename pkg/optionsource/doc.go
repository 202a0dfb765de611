// Package optionsource loads widget definitions and option lists from files,
// embedded filesystems, OpenAPI documents and HTTP endpoints.
//
// Decoding supports JSON, YAML (gopkg.in/yaml.v3) and TOML
// (github.com/pelletier/go-toml/v2). OpenAPI documents are read with
// github.com/getkin/kin-openapi so enum lists and array bounds can seed a
// widget and its host validation rules.
package optionsource
