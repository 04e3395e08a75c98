// Package prompts contains MCP prompt implementations for HAR archives.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	ArchivePath string
	EntryCount  int
}
