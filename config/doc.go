// Package config loads process configuration for the request layer.
//
// Configuration comes from a YAML file with environment-variable
// overrides on top; ${VAR} placeholders inside the file are expanded
// strictly, so a missing variable is an error rather than an empty
// string. The base endpoint address is fixed at process start and never
// renegotiated at runtime.
package config
