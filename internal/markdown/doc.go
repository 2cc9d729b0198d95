// Package markdown wraps goldmark for the markdown runs of a home page and
// loads home page files, with their front matter, from disk.
package markdown
