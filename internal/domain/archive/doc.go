// Package archive holds the naming rules for produced OTA archives.
package archive
