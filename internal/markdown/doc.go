// Package markdown resolves request paths to files under the base directory,
// reads them and converts their Markdown content into HTML fragments.
package markdown
