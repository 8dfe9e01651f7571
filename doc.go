// Package jsonschema implements a JSON Schema validator core covering
// Draft 2019-09 and Draft 2020-12, with compilation, $ref/$recursiveRef/
// $dynamicRef resolution, and Flag/Basic/Hierarchical evaluation output
// (plus the pre-2020-12 keywordLocation output shape via ToLegacy).
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for format validators.
package jsonschema
