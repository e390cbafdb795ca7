// Package confloader loads fontsession configuration and watches the files
// it depends on.
//
// Sources, lowest to highest priority:
//
//  1. Values already present in the target struct (defaults)
//  2. The YAML configuration file
//  3. FONTSESSION_* environment variables
//  4. Command-line flags, passed in with LoadMap
//
// The Watcher reports writes to individual files (the config file or the
// workspace manifest) by watching their parent directories.
package confloader
