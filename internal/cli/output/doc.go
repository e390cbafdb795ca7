// Package output renders command results for the fontsession CLI.
//
// Three formats are supported: table (default), json and yaml. Values that
// know their own layout implement Tabler; other structs and maps are
// flattened into KEY/VALUE rows with dotted keys.
package output
