// Package fs discovers input documents on the filesystem.
package fs
